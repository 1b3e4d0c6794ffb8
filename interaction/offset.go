package interaction

import "github.com/bebop-rna/intarna-go/energymodel"

// Offset wraps an Energy so a window-local predictor can address positions
// relative to its own window while every energy computation still resolves
// against the full sequences (C8). ofs1/ofs2 are the window's start offsets
// into the target/query sequences.
type Offset struct {
	*Energy
	ofs1, ofs2 int
}

// NewOffset wraps energy with the given target/query window offsets.
func NewOffset(energy *Energy, ofs1, ofs2 int) *Offset {
	return &Offset{Energy: energy, ofs1: ofs1, ofs2: ofs2}
}

// Size1 returns the number of target positions addressable through this
// offset view (from ofs1 to the end of the target sequence).
func (o *Offset) Size1() int { return o.Energy.Index1().Len() - o.ofs1 }

// Size2 returns the analogous count for the query.
func (o *Offset) Size2() int { return o.Energy.Index2().Len() - o.ofs2 }

// toAbsolute1 translates a window-local target index to an absolute one.
func (o *Offset) toAbsolute1(i int) int { return i + o.ofs1 }

// toAbsolute2 translates a window-local query index to an absolute one.
func (o *Offset) toAbsolute2(i int) int { return i + o.ofs2 }

// EInterLeft re-exposes Energy.EInterLeft with window-local coordinates.
func (o *Offset) EInterLeft(i1, i2, k1, k2 int) float64 {
	return o.Energy.EInterLeft(o.toAbsolute1(i1), o.toAbsolute2(i2), o.toAbsolute1(k1), o.toAbsolute2(k2))
}

// ED1 re-exposes Energy.ED1 with window-local target coordinates.
func (o *Offset) ED1(i1, j1 int) float64 {
	return o.Energy.ED1(o.toAbsolute1(i1), o.toAbsolute1(j1))
}

// ED2 re-exposes Energy.ED2 with window-local query coordinates.
func (o *Offset) ED2(i2, j2 int) float64 {
	return o.Energy.ED2(o.toAbsolute2(i2), o.toAbsolute2(j2))
}

// AreComplementary re-exposes Energy.AreComplementary with window-local
// coordinates.
func (o *Offset) AreComplementary(i1, i2 int) bool {
	return o.Energy.AreComplementary(o.toAbsolute1(i1), o.toAbsolute2(i2))
}

// BasePair re-exposes Energy.BasePair with window-local coordinates.
func (o *Offset) BasePair(i1, i2 int) (energymodel.BasePairType, bool) {
	return o.Energy.BasePair(o.toAbsolute1(i1), o.toAbsolute2(i2))
}
