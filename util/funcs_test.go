package util

import (
	"github.com/stretchr/testify/assert"
	"slices"
	"strconv"
	"testing"
)

func TestConcatAndMapIter(t *testing.T) {
	joined := ConcatIter(slices.Values([]int{1, 2}), slices.Values([]int(nil)), slices.Values([]int{3}))
	assert.Equal(t, []string{"1", "2", "3"}, slices.Collect(MapIter(joined, strconv.Itoa)))

	var firstTwo []int
	for v := range joined {
		if len(firstTwo) == 2 {
			break
		}
		firstTwo = append(firstTwo, v)
	}
	assert.Equal(t, []int{1, 2}, firstTwo)
}

func TestSetFromSeq(t *testing.T) {
	s := SetFromSeq(slices.Values([]string{"a", "b", "a"}), 0)
	assert.Equal(t, 2, s.Size())
	assert.True(t, s.Contains("b"))
}

func TestMSet(t *testing.T) {
	s := NewEmptySet[string]()
	s.Add("a", "b", "c")
	s.Remove("b")
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("b"))
	assert.ElementsMatch(t, []string{"a", "c"}, s.AsSlice())

	frozen := s.Immutable(nil)
	s.Add("d")
	assert.Equal(t, 2, frozen.Len())
	assert.True(t, frozen.Has("c"))
}
