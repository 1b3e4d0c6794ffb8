package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bebop-rna/intarna-go/interaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInteraction() *interaction.Interaction {
	return &interaction.Interaction{
		E:   -5.2,
		BPs: []interaction.BasePair{{I: 0, K: 7}, {I: 1, K: 6}},
		Seed: &interaction.SeedInfo{
			E:   -2.0,
			BPs: []interaction.BasePair{{I: 0, K: 7}, {I: 1, K: 6}},
		},
	}
}

func TestTextEmitsCompactLine(t *testing.T) {
	var buf bytes.Buffer
	h := NewText(&buf)
	require.NoError(t, h.Emit(sampleInteraction()))
	require.NoError(t, h.Close())
	assert.Contains(t, buf.String(), "E=-5.20")
}

func TestTextRejectsEmptyInteraction(t *testing.T) {
	var buf bytes.Buffer
	h := NewText(&buf)
	assert.Error(t, h.Emit(&interaction.Interaction{}))
}

func TestDetailedListsEveryBasePairAndSeed(t *testing.T) {
	var buf bytes.Buffer
	h := NewDetailed(&buf)
	require.NoError(t, h.Emit(sampleInteraction()))
	require.NoError(t, h.Close())
	out := buf.String()
	assert.Contains(t, out, "1:8")
	assert.Contains(t, out, "seed E=-2.00")
}

type fakeZall struct{ z float64 }

func (f fakeZall) Zall() float64 { return f.z }

func TestEnsembleReportsZall(t *testing.T) {
	var buf bytes.Buffer
	h := NewEnsemble(&buf, fakeZall{z: 12.5})
	require.NoError(t, h.Emit(sampleInteraction()))
	require.NoError(t, h.Close())
	assert.Contains(t, buf.String(), "Zall=12.5")
}

func TestCSVWritesHeaderAndConfiguredColumns(t *testing.T) {
	var buf bytes.Buffer
	h := NewCSV(&buf, []string{"start1", "end1", "E", "bpList"}, ";", "|")
	require.NoError(t, h.Emit(sampleInteraction()))
	require.NoError(t, h.Close())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "start1;end1;E;bpList", lines[0])
	assert.Contains(t, lines[1], "|")
}

func TestSortedCSVSortsByAscendingEnergyOnClose(t *testing.T) {
	var buf bytes.Buffer
	h := NewSortedCSV(&buf, []string{"E"}, ",", "|")
	require.NoError(t, h.Emit(&interaction.Interaction{E: -1, BPs: []interaction.BasePair{{I: 0, K: 0}}}))
	require.NoError(t, h.Emit(&interaction.Interaction{E: -9, BPs: []interaction.BasePair{{I: 1, K: 1}}}))
	require.NoError(t, h.Close())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "E", lines[0])
	assert.Equal(t, "-9.00", lines[1])
	assert.Equal(t, "-1.00", lines[2])
}

func TestRowFromInteractionOmitsSeedEWhenNoSeed(t *testing.T) {
	row := RowFromInteraction(&interaction.Interaction{E: -1, BPs: []interaction.BasePair{{I: 0, K: 0}}})
	assert.False(t, row.HasSeed)
	assert.Equal(t, "", columnValue("seedE", row))
}
