package helix

import (
	"testing"

	"github.com/bebop-rna/intarna-go/accessibility"
	"github.com/bebop-rna/intarna-go/energymodel"
	"github.com/bebop-rna/intarna-go/interaction"
	"github.com/bebop-rna/intarna-go/rna"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildEnergy(t *testing.T) *interaction.Energy {
	t.Helper()
	target, err := rna.NewSequence("t", "GGGGCCCC", 1)
	require.NoError(t, err)
	query, err := rna.NewSequence("q", "GGGGCCCC", 1)
	require.NoError(t, err)
	accT := accessibility.NewDisabled(target)
	accQ := accessibility.NewDisabled(query)
	model := energymodel.NewBasePairModel()
	return interaction.NewEnergy(accT, accQ, model, 4, 4)
}

func TestConstraintValidateRejectsMaxBelowMin(t *testing.T) {
	c := &Constraint{MinBP: 4, MaxBP: 2}
	assert.Error(t, c.Validate())
}

func TestConstraintValidateRejectsSmallMinBP(t *testing.T) {
	c := &Constraint{MinBP: 1, MaxBP: 4}
	assert.Error(t, c.Validate())
}

func TestFillFindsHelixBlock(t *testing.T) {
	energy := buildEnergy(t)
	c := &Constraint{MinBP: 2, MaxBP: 4, MaxInteriorLoopSize: 0, MaxE: 1000}
	h := NewHandler(c, energy)
	found, err := h.Fill(0, 7, 0, 7)
	require.NoError(t, err)
	require.Greater(t, found, 0)

	e, ok := h.E(0, 4)
	assert.True(t, ok)
	assert.Less(t, e, accessibility.UpperBoundKcal)
	assert.GreaterOrEqual(t, h.BPCount(0, 4), c.MinBP)
}

func TestEReportsNotFoundForUnanchoredStart(t *testing.T) {
	energy := buildEnergy(t)
	c := &Constraint{MinBP: 2, MaxBP: 4, MaxE: 1000}
	h := NewHandler(c, energy)
	_, ok := h.E(3, 3)
	assert.False(t, ok)
}

func TestTraceBackAppendsHelixBasePairs(t *testing.T) {
	energy := buildEnergy(t)
	c := &Constraint{MinBP: 2, MaxBP: 4, MaxInteriorLoopSize: 0, MaxE: 1000}
	h := NewHandler(c, energy)
	_, err := h.Fill(0, 7, 0, 7)
	require.NoError(t, err)

	inter := &interaction.Interaction{}
	h.TraceBack(inter, 0, 4)
	assert.NotEmpty(t, inter.BPs)
}
