package predictor

import (
	"testing"

	"github.com/bebop-rna/intarna-go/helix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelixBlockReportsFoundBlocks(t *testing.T) {
	energy := buildEnergy(t, "GGGGCCCC", "GGGGCCCC")
	c := &helix.Constraint{MinBP: 2, MaxBP: 4, MaxInteriorLoopSize: 0, MaxE: 1000}
	h := helix.NewHandler(c, energy)
	p := NewHelixBlock(energy, h, 5)
	require.NoError(t, p.Predict(fullRange(8), fullRange(8)))
	assert.NotEmpty(t, p.Results())
}
