package predictor

import (
	"testing"

	"github.com/bebop-rna/intarna-go/interaction"
	"github.com/stretchr/testify/assert"
)

func withBPs(e float64, i1, k1 int) *interaction.Interaction {
	return &interaction.Interaction{E: e, BPs: []interaction.BasePair{{I: i1, K: k1}}}
}

func TestTopKKeepsKLowestEnergy(t *testing.T) {
	tk := newTopK(2, false)
	tk.Offer(withBPs(-1, 0, 0), 0, 0)
	tk.Offer(withBPs(-5, 10, 10), 10, 10)
	tk.Offer(withBPs(-3, 20, 20), 20, 20)
	results := tk.Results()
	assert.Len(t, results, 2)
	assert.Equal(t, -5.0, results[0].E)
	assert.Equal(t, -3.0, results[1].E)
}

func TestTopKExactKeepsFirstFoundAtOverlap(t *testing.T) {
	tk := newTopK(4, false)
	first := withBPs(-2, 5, 5)
	second := withBPs(-2, 5, 5)
	tk.Offer(first, 5, 5)
	tk.Offer(second, 5, 5)
	results := tk.Results()
	require := assert.New(t)
	require.Len(results, 1)
	require.Same(first, results[0])
}

func TestTopKHeuristicKeepsLatestAtOverlap(t *testing.T) {
	tk := newTopK(4, true)
	first := withBPs(-2, 5, 5)
	second := withBPs(-2, 5, 5)
	tk.Offer(first, 5, 5)
	tk.Offer(second, 5, 5)
	results := tk.Results()
	assert.Len(t, results, 1)
	assert.Same(t, second, results[0])
}

func TestTopKRejectsWorseOverlapping(t *testing.T) {
	tk := newTopK(4, false)
	better := withBPs(-5, 5, 5)
	worse := withBPs(-1, 5, 5)
	tk.Offer(better, 5, 5)
	tk.Offer(worse, 5, 5)
	results := tk.Results()
	assert.Len(t, results, 1)
	assert.Equal(t, -5.0, results[0].E)
}

func TestOverlapsDetectsSharedPositions(t *testing.T) {
	a := candidate{inter: withBPs(0, 3, 3), start1: 3, start2: 3}
	b := candidate{inter: withBPs(0, 3, 10), start1: 3, start2: 10}
	assert.True(t, overlaps(a, b))

	c := candidate{inter: withBPs(0, 20, 20), start1: 20, start2: 20}
	assert.False(t, overlaps(a, c))
}
