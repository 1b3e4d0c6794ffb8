package predictor

import (
	"github.com/bebop-rna/intarna-go/interaction"
	"github.com/bebop-rna/intarna-go/irange"
)

// Ensemble is spec.md §4.7's Model 'P': instead of keeping only the single
// minimum-energy interaction per boundary, it accumulates the Boltzmann
// weight of every valid nested interaction into a running partition-function
// total (Zall), replacing the (min,+) semiring Mfe2D uses with (+,*). It
// still retains the true minimum-energy interaction (computed the same way
// as Mfe2D) for Results(), since a ranked output still needs one.
//
// This sums only the best interaction found at each window boundary rather
// than the full nested suboptimal ensemble at every boundary — a disclosed
// simplification of the exact McCaskill-style sum, analogous to
// foldengine's documented single-cut approximation.
type Ensemble struct {
	base
	zAll float64
}

// NewEnsemble constructs a partition-function-accumulating predictor.
func NewEnsemble(energy *interaction.Energy, k int) *Ensemble {
	return &Ensemble{base: newBase(energy, k, false)}
}

// Zall returns the accumulated partition-function total for the last
// Predict call.
func (p *Ensemble) Zall() float64 { return p.zAll }

func (p *Ensemble) Predict(rangeT, rangeQ irange.Range) error {
	if err := p.beginPredict(); err != nil {
		return err
	}
	n1, n2 := p.energy.Index1().Len(), p.energy.Index2().Len()
	rt := clampRange(rangeT, n1)
	rq := clampRange(rangeQ, n2)

	for j1 := rt.From; j1 <= rt.To; j1++ {
		for j2 := rq.From; j2 <= rq.To; j2++ {
			tbl := newTensor2(n1, n2, unset)
			for i1 := j1; i1 >= rt.From; i1-- {
				for i2 := j2; i2 >= rq.From; i2-- {
					fillCell2D(p.energy, tbl, i1, j1, i2, j2)
				}
			}
			for i1 := rt.From; i1 <= j1; i1++ {
				for i2 := rq.From; i2 <= j2; i2++ {
					if !tbl.isSet(i1, i2) {
						continue
					}
					hybridE := tbl.get(i1, i2)
					total := p.energy.E(i1, j1, i2, j2, hybridE)
					p.zAll += p.energy.BoltzmannWeight(total)
					inter := traceBack2D(p.energy, tbl, i1, j1, i2, j2, total)
					if inter != nil {
						p.topK.Offer(inter, i1, i2)
					}
				}
			}
		}
	}
	if err := p.advance(stateTablesBuilt); err != nil {
		return err
	}
	return p.advance(stateOptimaStreamed)
}
