package predictor

import (
	"github.com/bebop-rna/intarna-go/interaction"
	"github.com/bebop-rna/intarna-go/irange"
)

// Mfe4D is the exact predictor keeping the full 4D hybridization-energy
// tensor live (spec.md §4.7's PredictorMfe4d/MfeRNAup), grounded on
// fold.go's memoized-table recursion generalized from one sequence to two.
//
// tbl[i1][j1][i2][j2] holds the minimum hybridization energy of a nested
// interaction whose outermost base pair is (i1,i2) and whose innermost (the
// one closest to the 3' ends) is (j1,j2), both strands read 5'->3'.
type Mfe4D struct {
	base
	tbl *tensor
}

// NewMfe4D constructs an exact 4D predictor retaining up to k suboptimal
// results.
func NewMfe4D(energy *interaction.Energy, k int) *Mfe4D {
	return &Mfe4D{base: newBase(energy, k, false)}
}

// Predict fills the DP tensor over the given windows and streams every
// valid interaction found into the shared topk buffer.
func (p *Mfe4D) Predict(rangeT, rangeQ irange.Range) error {
	if err := p.beginPredict(); err != nil {
		return err
	}
	n1, n2 := p.energy.Index1().Len(), p.energy.Index2().Len()
	rt := clampRange(rangeT, n1)
	rq := clampRange(rangeQ, n2)
	p.tbl = newTensor(n1, n2, unset)

	for span1 := 0; span1 <= rt.To-rt.From; span1++ {
		for i1 := rt.From; i1+span1 <= rt.To; i1++ {
			j1 := i1 + span1
			for span2 := 0; span2 <= rq.To-rq.From; span2++ {
				for i2 := rq.From; i2+span2 <= rq.To; i2++ {
					j2 := i2 + span2
					p.fillCell(i1, j1, i2, j2)
				}
			}
		}
	}
	if err := p.advance(stateTablesBuilt); err != nil {
		return err
	}

	for i1 := rt.From; i1 <= rt.To; i1++ {
		for j1 := i1; j1 <= rt.To; j1++ {
			for i2 := rq.From; i2 <= rq.To; i2++ {
				for j2 := i2; j2 <= rq.To; j2++ {
					if !p.tbl.isSet(i1, j1, i2, j2) {
						continue
					}
					hybridE := p.tbl.get(i1, j1, i2, j2)
					total := p.energy.E(i1, j1, i2, j2, hybridE)
					inter := p.traceBack(i1, j1, i2, j2, total)
					if inter != nil {
						p.topK.Offer(inter, i1, i2)
					}
				}
			}
		}
	}
	return p.advance(stateOptimaStreamed)
}

func (p *Mfe4D) fillCell(i1, j1, i2, j2 int) {
	if !p.energy.AreComplementary(i1, i2) || !p.energy.AreComplementary(j1, j2) {
		return
	}
	var best float64
	if i1 == j1 && i2 == j2 {
		best = p.energy.EInit()
	} else {
		best = unset
		for k1 := i1; k1 <= j1; k1++ {
			for k2 := i2; k2 <= j2; k2++ {
				if k1 == i1 && k2 == i2 {
					continue
				}
				if !p.tbl.isSet(k1, j1, k2, j2) {
					continue
				}
				step := p.energy.EInterLeft(i1, i2, k1, k2) + p.tbl.get(k1, j1, k2, j2)
				if step < best {
					best = step
				}
			}
		}
	}
	if best < unset {
		p.tbl.set(i1, j1, i2, j2, best)
	}
}

// traceBack recovers the base-pair list for the cell (i1,j1,i2,j2) by
// re-finding, at each step, the inner pair that achieved the stored minimum.
func (p *Mfe4D) traceBack(i1, j1, i2, j2 int, total float64) *interaction.Interaction {
	var bps []interaction.BasePair
	cur1, cur2 := i1, i2
	for {
		bps = append(bps, interaction.BasePair{I: cur1, K: cur2})
		if cur1 == j1 && cur2 == j2 {
			break
		}
		found := false
		current := p.tbl.get(cur1, j1, cur2, j2)
		for k1 := cur1; k1 <= j1 && !found; k1++ {
			for k2 := cur2; k2 <= j2 && !found; k2++ {
				if k1 == cur1 && k2 == cur2 {
					continue
				}
				if !p.tbl.isSet(k1, j1, k2, j2) {
					continue
				}
				step := p.energy.EInterLeft(cur1, cur2, k1, k2) + p.tbl.get(k1, j1, k2, j2)
				if step == current {
					cur1, cur2 = k1, k2
					found = true
				}
			}
		}
		if !found {
			return nil
		}
	}
	inter := &interaction.Interaction{BPs: p.energy.ToExternal(bps), E: total}
	if err := inter.Validate(p.energy.Model, p.energy.AccT, p.energy.AccQ, p.energy.MaxIntLoop1, p.energy.MaxIntLoop2); err != nil {
		return nil
	}
	return inter
}
