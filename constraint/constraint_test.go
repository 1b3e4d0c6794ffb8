package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConstraintPerPosition(t *testing.T) {
	c, err := ParseConstraint("..xpb.", 6)
	require.NoError(t, err)
	assert.Equal(t, Free, c.Kind(0))
	assert.Equal(t, Unpaired, c.Kind(2))
	assert.Equal(t, PairedIntra, c.Kind(3))
	assert.True(t, c.IsBlocked(4))
	assert.False(t, c.IsBlocked(5))
}

func TestParseConstraintRangeForm(t *testing.T) {
	c, err := ParseConstraint("b:3-4,33-40,p:1-2,12-20", 40)
	require.NoError(t, err)
	assert.True(t, c.IsBlocked(2)) // 1-based 3 -> 0-based 2
	assert.True(t, c.IsBlocked(3))
	assert.True(t, c.IsBlocked(32))
	assert.Equal(t, PairedIntra, c.Kind(0))
	assert.Equal(t, PairedIntra, c.Kind(11))
	assert.Equal(t, Free, c.Kind(25))
}

func TestBlockedIn(t *testing.T) {
	c, err := ParseConstraint("..b...", 6)
	require.NoError(t, err)
	assert.True(t, c.BlockedIn(0, 3))
	assert.False(t, c.BlockedIn(3, 5))
}

func TestAttachShapeLengthMismatch(t *testing.T) {
	c, err := ParseConstraint("", 5)
	require.NoError(t, err)
	err = c.AttachShape([]float64{1, 2, 3})
	assert.Error(t, err)
	require.NoError(t, c.AttachShape([]float64{1, 2, 3, 4, 5}))
	assert.Equal(t, 3.0, c.ShapeEnergy(2))
}
