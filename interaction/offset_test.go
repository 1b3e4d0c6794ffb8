package interaction

import (
	"testing"

	"github.com/bebop-rna/intarna-go/accessibility"
	"github.com/bebop-rna/intarna-go/energymodel"
	"github.com/bebop-rna/intarna-go/rna"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetSizesAccountForStart(t *testing.T) {
	e := buildEnergy(t)
	off := NewOffset(e, 2, 3)
	assert.Equal(t, e.Index1().Len()-2, off.Size1())
	assert.Equal(t, e.Index2().Len()-3, off.Size2())
}

func TestOffsetED1MatchesAbsolute(t *testing.T) {
	e := buildEnergy(t)
	off := NewOffset(e, 2, 1)
	assert.Equal(t, e.ED1(2, 5), off.ED1(0, 3))
	assert.Equal(t, e.ED2(1, 4), off.ED2(0, 3))
}

func TestOffsetEInterLeftMatchesAbsolute(t *testing.T) {
	e := buildEnergy(t)
	off := NewOffset(e, 1, 1)
	want := e.EInterLeft(1, 1, 2, 2)
	got := off.EInterLeft(0, 0, 1, 1)
	assert.Equal(t, want, got)
}

func TestOffsetBasePairAndComplementaryMatchAbsolute(t *testing.T) {
	e := buildEnergy(t)
	off := NewOffset(e, 2, 2)
	wantPair, wantOk := e.BasePair(2, 2)
	gotPair, gotOk := off.BasePair(0, 0)
	assert.Equal(t, wantOk, gotOk)
	assert.Equal(t, wantPair, gotPair)
	assert.Equal(t, e.AreComplementary(2, 2), off.AreComplementary(0, 0))
}

func TestOffsetWrapsDisabledAccessibility(t *testing.T) {
	target, err := rna.NewSequence("t", "GGGGCCCC", 1)
	require.NoError(t, err)
	query, err := rna.NewSequence("q", "GGGGCCCC", 1)
	require.NoError(t, err)
	accT := accessibility.NewDisabled(target)
	accQ := accessibility.NewDisabled(query)
	assert.Equal(t, 0.0, accT.GetED(0, 1))
	assert.Equal(t, 0.0, accQ.GetED(0, 1))
	off := NewOffset(NewEnergy(accT, accQ, energymodel.NewBasePairModel(), 4, 4), 1, 1)
	assert.Equal(t, 0.0, off.ED1(0, 1))
	assert.Equal(t, 0.0, off.ED2(0, 1))
}
