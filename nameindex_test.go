package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldASCII(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"already-lower", "already-lower"},
		{"MixedCase", "mixedcase"},
		{"ALLCAPS", "allcaps"},
		{"café-NAME", "café-name"}, // non-ASCII byte untouched
	}
	for _, c := range cases {
		assert.Equal(t, c.want, foldASCII(c.in))
	}
}

func TestNameIndex_CaseInsensitiveLookup(t *testing.T) {
	idx := newNameIndex()
	e := &Event{name: "PlayerDied"}
	require.True(t, idx.putIfAbsent(e.name, e))

	got, ok := idx.get("playerdied")
	require.True(t, ok)
	assert.Same(t, e, got)

	got, ok = idx.get("PLAYERDIED")
	require.True(t, ok)
	assert.Same(t, e, got)

	// the verbatim case is preserved on the event, not folded
	assert.Equal(t, "PlayerDied", got.name)
}

func TestNameIndex_PutIfAbsentRejectsDuplicateFoldedKey(t *testing.T) {
	idx := newNameIndex()
	first := &Event{name: "Ready"}
	second := &Event{name: "READY"}

	require.True(t, idx.putIfAbsent(first.name, first))
	require.False(t, idx.putIfAbsent(second.name, second))

	got, ok := idx.get("ready")
	require.True(t, ok)
	assert.Same(t, first, got)
}
