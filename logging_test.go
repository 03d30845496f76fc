package notify

import (
	"testing"

	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogger_InstallsGlobalDefault(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	custom := stumpy.L.New(stumpy.L.WithStumpy())
	SetLogger(custom)
	assert.Same(t, custom, globalLogger())
}

func TestSetLogger_NilRestoresDefault(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	custom := stumpy.L.New(stumpy.L.WithStumpy())
	SetLogger(custom)
	require.Same(t, custom, globalLogger())

	SetLogger(nil)
	assert.NotSame(t, custom, globalLogger())
}
