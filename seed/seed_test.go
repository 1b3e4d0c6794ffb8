package seed

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

func TestConstraintValidateRejectsShortBP(t *testing.T) {
	c := &Constraint{BP: 1}
	assert.Error(t, c.Validate())
}

func TestConstraintMaxLenCapsToOverall(t *testing.T) {
	c := &Constraint{BP: 3, MaxUnpOverall: 1, MaxUnp1: 5, MaxUnp2: 5}
	assert.Equal(t, 4, c.MaxLen1())
	assert.Equal(t, 4, c.MaxLen2())
}

func TestNoBulgeHandlerFindsPerfectStack(t *testing.T) {
	energy := buildEnergy(t)
	c := &Constraint{BP: 3, MaxE: 1000}
	h := NewNoBulgeHandler(energy, c)
	found, err := h.Fill(0, 7, 0, 7)
	require.NoError(t, err)
	assert.Greater(t, found, 0)
}

func TestMFEHandlerAllowsBulge(t *testing.T) {
	energy := buildEnergy(t)
	c := &Constraint{BP: 2, MaxUnpOverall: 2, MaxUnp1: 2, MaxUnp2: 2, MaxE: 1000}
	h := NewMFEHandler(energy, c)
	found, err := h.Fill(0, 7, 0, 7)
	require.NoError(t, err)
	assert.Greater(t, found, 0)
}

func TestExplicitHandlerParsesDotBarSpec(t *testing.T) {
	energy := buildEnergy(t)
	h, err := NewExplicitHandler(energy, "1||&1||")
	require.NoError(t, err)
	found, err := h.Fill(0, 7, 0, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, found)
	assert.Equal(t, 2, h.Len1(0, 0))
}

func TestExplicitHandlerRejectsMismatchedLengths(t *testing.T) {
	energy := buildEnergy(t)
	_, err := NewExplicitHandler(energy, "1||&1|")
	assert.Error(t, err)
}

func TestNewHandlerDispatchesOnMaxUnpOverall(t *testing.T) {
	energy := buildEnergy(t)
	noBulge := NewHandler(&Constraint{BP: 2, MaxUnpOverall: 0, MaxE: 1000}, energy)
	_, ok := noBulge.(*NoBulgeHandler)
	assert.True(t, ok)

	mfe := NewHandler(&Constraint{BP: 2, MaxUnpOverall: 2, MaxE: 1000}, energy)
	_, ok = mfe.(*MFEHandler)
	assert.True(t, ok)
}

func TestNoBulgeHandlerFindsScenario1Seed(t *testing.T) {
	target, err := rna.NewSequence("t", "AAACCCC", 1)
	require.NoError(t, err)
	query, err := rna.NewSequence("q", "GGGGUUU", 1)
	require.NoError(t, err)
	energy := interaction.NewEnergy(accessibility.NewDisabled(target), accessibility.NewDisabled(query), energymodel.NewBasePairModel(), 4, 4)

	c := &Constraint{BP: 3, MaxE: 1000}
	h := NewNoBulgeHandler(energy, c)
	found, err := h.Fill(0, 6, 0, 6)
	require.NoError(t, err)
	assert.Greater(t, found, 0)
	// (3,0),(4,1),(5,2) is the start of the run that the full MFE extends
	// into scenario 1's reported 4-bp interaction.
	assert.Equal(t, -3.0, h.E(3, 0))
	assert.Equal(t, 3, h.Len1(3, 0))
	assert.Equal(t, 3, h.Len2(3, 0))
}

func TestNoGUExcludesWobbleSeeds(t *testing.T) {
	target, err := rna.NewSequence("t", "ACGUACGU", 1)
	require.NoError(t, err)
	query, err := rna.NewSequence("q", "ACGUACGU", 1)
	require.NoError(t, err)
	energy := interaction.NewEnergy(accessibility.NewDisabled(target), accessibility.NewDisabled(query), energymodel.NewBasePairModel(), 4, 4)

	withWobble := NewNoBulgeHandler(energy, &Constraint{BP: 3, MaxE: 1000})
	found, err := withWobble.Fill(0, 7, 0, 7)
	require.NoError(t, err)
	assert.Greater(t, found, 0, "wobble-inclusive search finds 3-bp runs through G-U pairs")

	noGU := NewNoBulgeHandler(energy, &Constraint{BP: 3, MaxE: 1000, NoGU: true})
	found, err = noGU.Fill(0, 7, 0, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, found, "every 3-bp run in this sequence pair contains a G-U pair")
}

func TestTraceBackAttachesSeedInfo(t *testing.T) {
	energy := buildEnergy(t)
	c := &Constraint{BP: 3, MaxE: 1000}
	h := NewNoBulgeHandler(energy, c)
	_, err := h.Fill(0, 7, 0, 7)
	require.NoError(t, err)
	si1, si2 := h.keys[0][0], h.keys[0][1]
	inter := &interaction.Interaction{}
	h.TraceBack(inter, si1, si2)
	require.NotNil(t, inter.Seed)
	assert.Len(t, inter.Seed.BPs, 3)
}
