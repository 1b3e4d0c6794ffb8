package irange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRangesRoundTrip(t *testing.T) {
	list, err := ParseRanges("1-5,10-20", 30)
	require.NoError(t, err)
	assert.Equal(t, "1-5,10-20", list.String())
	assert.Equal(t, Range{From: 0, To: 4}, list[0])
	assert.Equal(t, Range{From: 9, To: 19}, list[1])
}

func TestParseRangesEmptyMeansFullSequence(t *testing.T) {
	list, err := ParseRanges("", 10)
	require.NoError(t, err)
	assert.Equal(t, List{{From: 0, To: 9}}, list)
}

func TestParseRangesOutOfBounds(t *testing.T) {
	_, err := ParseRanges("1-50", 10)
	assert.Error(t, err)
}

func TestOverlapsAndContains(t *testing.T) {
	a := Range{From: 0, To: 10}
	b := Range{From: 9, To: 20}
	c := Range{From: 11, To: 20}
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
	assert.True(t, a.Contains(5))
	assert.False(t, a.Contains(11))
}

func TestWindows(t *testing.T) {
	list := List{{From: 0, To: 19}}
	windows := list.Windows(10, 2)
	require.NotEmpty(t, windows)
	assert.Equal(t, Range{From: 0, To: 9}, windows[0])
	assert.Equal(t, 19, windows[len(windows)-1].To)
	for _, w := range windows {
		assert.LessOrEqual(t, w.Len(), 10)
	}
}

func TestWindowsSmallerThanWidth(t *testing.T) {
	list := List{{From: 0, To: 4}}
	windows := list.Windows(10, 2)
	assert.Equal(t, list, List(windows))
}
