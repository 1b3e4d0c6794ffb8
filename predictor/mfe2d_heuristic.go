package predictor

import (
	"github.com/bebop-rna/intarna-go/interaction"
	"github.com/bebop-rna/intarna-go/irange"
)

// Mfe2DHeuristic is the O(n^2) greedy predictor (spec.md §4.7's
// PredictorMfe2dHeuristic): from every complementary start pair it grows
// the interaction one step at a time, at each step taking the single
// cheapest next complementary pair within the configured interior-loop
// bound rather than exploring every continuation. Faster, not guaranteed
// optimal; the asymmetric overwrite-on-overlap tie-break in topk reflects
// that tradeoff per the documented DESIGN.md decision.
type Mfe2DHeuristic struct {
	base
}

// NewMfe2DHeuristic constructs the heuristic predictor.
func NewMfe2DHeuristic(energy *interaction.Energy, k int) *Mfe2DHeuristic {
	return &Mfe2DHeuristic{base: newBase(energy, k, true)}
}

func (p *Mfe2DHeuristic) Predict(rangeT, rangeQ irange.Range) error {
	if err := p.beginPredict(); err != nil {
		return err
	}
	n1, n2 := p.energy.Index1().Len(), p.energy.Index2().Len()
	rt := clampRange(rangeT, n1)
	rq := clampRange(rangeQ, n2)

	for i1 := rt.From; i1 <= rt.To; i1++ {
		for i2 := rq.From; i2 <= rq.To; i2++ {
			if !p.energy.AreComplementary(i1, i2) {
				continue
			}
			inter := p.greedyExtend(i1, i2, rt.To, rq.To)
			if inter != nil {
				p.topK.Offer(inter, i1, i2)
			}
		}
	}
	if err := p.advance(stateTablesBuilt); err != nil {
		return err
	}
	return p.advance(stateOptimaStreamed)
}

func (p *Mfe2DHeuristic) greedyExtend(i1, i2, j1Max, j2Max int) *interaction.Interaction {
	bps, hybridE := greedyChainForward(p.energy, i1, i2, j1Max, j2Max)
	if len(bps) == 0 {
		return nil
	}
	j1, j2 := bps[len(bps)-1].I, bps[len(bps)-1].K
	total := p.energy.E(i1, j1, i2, j2, hybridE+p.energy.EInit())
	inter := &interaction.Interaction{BPs: p.energy.ToExternal(bps), E: total}
	if err := inter.Validate(p.energy.Model, p.energy.AccT, p.energy.AccQ, p.energy.MaxIntLoop1, p.energy.MaxIntLoop2); err != nil {
		return nil
	}
	return inter
}
