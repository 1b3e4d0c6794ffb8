package predictor

import (
	"testing"

	"github.com/bebop-rna/intarna-go/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedOnlyReportsVerbatimSeeds(t *testing.T) {
	energy := buildEnergy(t, "GGGGCCCC", "GGGGCCCC")
	c := &seed.Constraint{BP: 2, MaxE: 1000}
	h := seed.NewNoBulgeHandler(energy, c)
	p := NewSeedOnly(energy, h, 5)
	require.NoError(t, p.Predict(fullRange(8), fullRange(8)))
	results := p.Results()
	require.NotEmpty(t, results)
	assert.NotNil(t, results[0].Seed)
}

func TestSeedExtensionGrowsBeyondSeed(t *testing.T) {
	energy := buildEnergy(t, "GGGGCCCC", "GGGGCCCC")
	c := &seed.Constraint{BP: 2, MaxE: 1000}
	h := seed.NewNoBulgeHandler(energy, c)
	p := NewSeedExtension(energy, h, 5, false)
	require.NoError(t, p.Predict(fullRange(8), fullRange(8)))
	results := p.Results()
	require.NotEmpty(t, results)
	assert.GreaterOrEqual(t, len(results[0].BPs), len(results[0].Seed.BPs))
}

func TestSeedExtensionHeuristicReportsOnePerSeed(t *testing.T) {
	energy := buildEnergy(t, "GGGGCCCC", "GGGGCCCC")
	c := &seed.Constraint{BP: 2, MaxE: 1000}
	h := seed.NewNoBulgeHandler(energy, c)
	p := NewSeedExtensionHeuristic(energy, h, 10, false)
	require.NoError(t, p.Predict(fullRange(8), fullRange(8)))
	assert.NotEmpty(t, p.Results())
}

func TestEnsembleAccumulatesZallAndReportsBest(t *testing.T) {
	energy := buildEnergy(t, "GGGGCCCC", "GGGGCCCC")
	p := NewEnsemble(energy, 5)
	require.NoError(t, p.Predict(fullRange(8), fullRange(8)))
	assert.Greater(t, p.Zall(), 0.0)
	assert.NotEmpty(t, p.Results())
}
