package predictor

import (
	"github.com/bebop-rna/intarna-go/interaction"
	"github.com/bebop-rna/intarna-go/irange"
)

// Mfe2D is the exact predictor that processes one (j1,j2) closing pair at a
// time, keeping only a 2D (i1,i2) table live instead of the full 4D tensor
// (spec.md §4.7's PredictorMfe2d) — the same recursion as Mfe4D, traded for
// lower peak memory at the cost of recomputing the table once per (j1,j2).
type Mfe2D struct {
	base
}

// NewMfe2D constructs the reduced-memory exact predictor.
func NewMfe2D(energy *interaction.Energy, k int) *Mfe2D {
	return &Mfe2D{base: newBase(energy, k, false)}
}

func (p *Mfe2D) Predict(rangeT, rangeQ irange.Range) error {
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

func fillCell2D(energy *interaction.Energy, tbl *tensor2, i1, j1, i2, j2 int) {
	if !energy.AreComplementary(i1, i2) || !energy.AreComplementary(j1, j2) {
		return
	}
	var best float64
	if i1 == j1 && i2 == j2 {
		best = energy.EInit()
	} else {
		best = unset
		for k1 := i1; k1 <= j1; k1++ {
			for k2 := i2; k2 <= j2; k2++ {
				if k1 == i1 && k2 == i2 {
					continue
				}
				if !tbl.isSet(k1, k2) {
					continue
				}
				step := energy.EInterLeft(i1, i2, k1, k2) + tbl.get(k1, k2)
				if step < best {
					best = step
				}
			}
		}
	}
	if best < unset {
		tbl.set(i1, i2, best)
	}
}

func traceBack2D(energy *interaction.Energy, tbl *tensor2, i1, j1, i2, j2 int, total float64) *interaction.Interaction {
	var bps []interaction.BasePair
	cur1, cur2 := i1, i2
	for {
		bps = append(bps, interaction.BasePair{I: cur1, K: cur2})
		if cur1 == j1 && cur2 == j2 {
			break
		}
		found := false
		current := tbl.get(cur1, cur2)
		for k1 := cur1; k1 <= j1 && !found; k1++ {
			for k2 := cur2; k2 <= j2 && !found; k2++ {
				if k1 == cur1 && k2 == cur2 {
					continue
				}
				if !tbl.isSet(k1, k2) {
					continue
				}
				step := energy.EInterLeft(cur1, cur2, k1, k2) + tbl.get(k1, k2)
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
	inter := &interaction.Interaction{BPs: energy.ToExternal(bps), E: total}
	if err := inter.Validate(energy.Model, energy.AccT, energy.AccQ, energy.MaxIntLoop1, energy.MaxIntLoop2); err != nil {
		return nil
	}
	return inter
}
