package slot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/memslot/pkg/slot"
)

func Test_Box_Is_Empty_When_Zero_Value(t *testing.T) {
	t.Parallel()

	var b slot.Box[record]

	assert.False(t, b.Live())

	_, ok := b.Get()
	assert.False(t, ok, "get on empty box should report absence")

	_, ok = b.Handle()
	assert.False(t, ok)

	assert.False(t, b.Clear(), "clear on empty box should report nothing removed")
}

func Test_Box_Get_Returns_Value_After_Put(t *testing.T) {
	t.Parallel()

	var b slot.Box[record]

	b.Put(record{ID: 1, Health: 2})

	v, ok := b.Get()
	require.True(t, ok)
	assert.Equal(t, record{ID: 1, Health: 2}, v)
	assert.True(t, b.Live())
}

func Test_Box_Put_Replaces_Previous_Value(t *testing.T) {
	t.Parallel()

	var b slot.Box[record]

	old := b.Put(record{ID: 1, Health: 2})
	b.Put(record{ID: 2, Health: 3})

	v, ok := b.Get()
	require.True(t, ok)
	assert.Equal(t, record{ID: 2, Health: 3}, v, "put should replace the held value")

	// Replacement is a full destroy/construct cycle: the old handle is
	// stale and must not observe the replacement.
	_, err := old.Value()
	require.ErrorIs(t, err, slot.ErrStaleHandle)
}

func Test_Box_Take_Removes_And_Returns_Value(t *testing.T) {
	t.Parallel()

	var b slot.Box[record]

	b.Put(record{ID: 4, Health: 4})

	v, ok := b.Take()
	require.True(t, ok)
	assert.Equal(t, record{ID: 4, Health: 4}, v)
	assert.False(t, b.Live(), "box should be empty after take")

	_, ok = b.Take()
	assert.False(t, ok, "second take should report absence")
}

func Test_Box_Reuses_One_Cell_Across_Cycles(t *testing.T) {
	t.Parallel()

	var b slot.Box[record]

	for id := int64(1); id <= 5; id++ {
		b.Put(record{ID: id, Health: id * 2})

		v, ok := b.Get()
		require.True(t, ok)
		assert.Equal(t, id, v.ID, "cycle %d: box should hold the latest value", id)

		assert.True(t, b.Clear())
	}
}

func Test_Box_Handle_Goes_Stale_When_Cleared(t *testing.T) {
	t.Parallel()

	var b slot.Box[int]

	b.Put(1)

	h, ok := b.Handle()
	require.True(t, ok)
	require.True(t, h.Valid())

	require.True(t, b.Clear())

	assert.False(t, h.Valid())

	_, err := h.Value()
	require.ErrorIs(t, err, slot.ErrStaleHandle)
}
