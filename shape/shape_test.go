package shape

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("Dm1.8b-0.6")
	require.NoError(t, err)
	assert.Equal(t, Deigan, m.Kind)
	assert.InDelta(t, 1.8, m.Slope, 1e-9)
	assert.InDelta(t, -0.6, m.Intercept, 1e-9)

	m, err = ParseMethod("Zb0.89")
	require.NoError(t, err)
	assert.Equal(t, Zarringhalam, m.Kind)

	m, err = ParseMethod("W")
	require.NoError(t, err)
	assert.Equal(t, Washietl, m.Kind)

	_, err = ParseMethod("bogus")
	assert.Error(t, err)
}

func TestParseProbabilityConversion(t *testing.T) {
	c, err := ParseProbabilityConversion("C0.25")
	require.NoError(t, err)
	assert.Equal(t, Cutoff, c.Kind)
	assert.InDelta(t, 0.25, c.Cutoff, 1e-9)

	c, err = ParseProbabilityConversion("Ls0.5i0.1")
	require.NoError(t, err)
	assert.Equal(t, Linear, c.Kind)
}

func TestReactivityFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reactivity.txt")
	content := "# comment\n1 0.2\n2 NA_SKIPPED\n"
	_ = content
	require.NoError(t, os.WriteFile(path, []byte("# comment\n1 0.2\n3 0.8\n"), 0o644))

	reactivity, err := ReactivityFromFile(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, reactivity[0], 1e-9)
	assert.InDelta(t, 0.8, reactivity[2], 1e-9)
}

func TestToPseudoEnergy(t *testing.T) {
	method, err := ParseMethod("Dm1.0b0.0")
	require.NoError(t, err)
	reactivity := map[int]float64{0: 1.0}
	energies := ToPseudoEnergy(reactivity, 3, method)
	assert.NotEqual(t, 0.0, energies[0])
	assert.Equal(t, 0.0, energies[1])
}
