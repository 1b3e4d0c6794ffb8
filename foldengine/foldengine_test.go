package foldengine

import (
	"testing"

	"github.com/bebop-rna/intarna-go/energymodel"
	"github.com/bebop-rna/intarna-go/rna"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnpairedProbabilitiesShapeAndRange(t *testing.T) {
	seq, err := rna.NewSequence("s", "GGGGAAAACCCC", 1)
	require.NoError(t, err)

	e := NewEngine(energymodel.NewBasePairModel())
	table, err := e.UnpairedProbabilities(seq, 4)
	require.NoError(t, err)
	require.Len(t, table, seq.Len())

	for j, row := range table {
		for L, p := range row {
			if L == 0 || L > j+1 {
				continue
			}
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
		}
	}
}

func TestUnpairedProbabilityOfLoopRegionExceedsHelix(t *testing.T) {
	seq, err := rna.NewSequence("s", "GGGGAAAACCCC", 1)
	require.NoError(t, err)
	e := NewEngine(energymodel.NewBasePairModel())

	loopP, err := e.UnpairedProbability(seq, 4, 7)
	require.NoError(t, err)
	helixP, err := e.UnpairedProbability(seq, 0, 3)
	require.NoError(t, err)

	assert.Greater(t, loopP, helixP)
}

func TestBoltzmannMinEnergyUnsupportedForUnpairableRegion(t *testing.T) {
	seq, err := rna.NewSequence("s", "AAAA", 1)
	require.NoError(t, err)
	e := NewEngine(energymodel.NewBasePairModel())

	_, ok := e.BoltzmannMinEnergy(seq, 0, 3)
	assert.False(t, ok)
}
