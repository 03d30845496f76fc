package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMomentQueue_FIFOOrder(t *testing.T) {
	q := newMomentQueue(0)
	a := &Moment{}
	b := &Moment{}
	c := &Moment{}
	q.push(a)
	q.push(b)
	q.push(c)

	assert.Same(t, a, q.pop())
	assert.Same(t, b, q.pop())
	assert.Same(t, c, q.pop())
	assert.Nil(t, q.pop())
	assert.True(t, q.empty())
}

func TestMomentQueue_InterleavedPushPop(t *testing.T) {
	q := newMomentQueue(0)
	a := &Moment{}
	q.push(a)
	require.Same(t, a, q.pop())
	assert.True(t, q.empty())

	b := &Moment{}
	c := &Moment{}
	q.push(b)
	q.push(c)
	assert.Same(t, b, q.pop())
	assert.Same(t, c, q.pop())
}

func TestMomentQueue_CapacityHintDoesNotAffectOrdering(t *testing.T) {
	q := newMomentQueue(8)
	for i := 0; i < 3; i++ {
		q.push(&Moment{data: i})
	}
	for i := 0; i < 3; i++ {
		m := q.pop()
		require.NotNil(t, m)
		assert.Equal(t, i, m.data)
	}
}

func TestMomentQueue_NegativeCapacityHintClampedToZero(t *testing.T) {
	q := newMomentQueue(-5)
	assert.Equal(t, 0, cap(q.items))
}
