package energymodel

import (
	"testing"

	energyparams "github.com/bebop-rna/intarna-go/energy_params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasePairModelStack(t *testing.T) {
	m := NewBasePairModel()
	bp, ok := m.BasePairType('A', 'U')
	require.True(t, ok)
	assert.Equal(t, -1.0, m.Stack(bp, bp))
	assert.Greater(t, m.RT(), 0.0)
}

func TestBasePairTypeRejectsNonPair(t *testing.T) {
	m := NewBasePairModel()
	_, ok := m.BasePairType('A', 'A')
	assert.False(t, ok)
}

func TestNearestNeighborModelIsDeterministic(t *testing.T) {
	m1 := NewNearestNeighborModel(energyparams.Turner2004, 37.0)
	m2 := NewNearestNeighborModel(energyparams.Turner2004, 37.0)
	bp, ok := m1.BasePairType('G', 'C')
	require.True(t, ok)
	assert.Equal(t, m1.Stack(bp, bp), m2.Stack(bp, bp))
	assert.Greater(t, m1.RT(), 0.0)
}

func TestParseEnergyParamsSet(t *testing.T) {
	set, err := ParseEnergyParamsSet("Turner1999")
	require.NoError(t, err)
	assert.Equal(t, energyparams.Turner1999, set)

	_, err = ParseEnergyParamsSet("bogus")
	assert.Error(t, err)
}
