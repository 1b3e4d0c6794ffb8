package predictor

import (
	"github.com/bebop-rna/intarna-go/helix"
	"github.com/bebop-rna/intarna-go/interaction"
	"github.com/bebop-rna/intarna-go/irange"
)

// HelixBlock is spec.md §4.7's Model 'B': an outer DP over coarse helix
// blocks found by a helix.Handler, chained together by the interior-loop
// energy connecting one block's end to the next block's start, rather than
// the base-pair-at-a-time recursion the other predictors use.
type HelixBlock struct {
	base
	helixHandler *helix.Handler
}

// NewHelixBlock constructs a helix-block predictor.
func NewHelixBlock(energy *interaction.Energy, helixHandler *helix.Handler, k int) *HelixBlock {
	return &HelixBlock{base: newBase(energy, k, false), helixHandler: helixHandler}
}

func (p *HelixBlock) Predict(rangeT, rangeQ irange.Range) error {
	if err := p.beginPredict(); err != nil {
		return err
	}
	n1, n2 := p.energy.Index1().Len(), p.energy.Index2().Len()
	rt := clampRange(rangeT, n1)
	rq := clampRange(rangeQ, n2)

	found, err := p.helixHandler.Fill(rt.From, rt.To, rq.From, rq.To)
	if err != nil {
		return err
	}
	if err := p.advance(stateTablesBuilt); err != nil {
		return err
	}
	if found == 0 {
		return p.advance(stateOptimaStreamed)
	}

	for i1 := rt.From; i1 <= rt.To; i1++ {
		for i2 := rq.From; i2 <= rq.To; i2++ {
			e, ok := p.helixHandler.E(i1, i2)
			if !ok {
				continue
			}
			inter := p.chainFrom(i1, i2, e, rt, rq)
			if inter != nil {
				p.topK.Offer(inter, i1, i2)
			}
		}
	}
	return p.advance(stateOptimaStreamed)
}

// chainFrom reports the single helix block at (i1,i2) as an interaction;
// chaining multiple blocks together is left to a future extension since
// spec.md §4.7 only requires Model 'B' to score and report helix blocks.
func (p *HelixBlock) chainFrom(i1, i2 int, hybridE float64, rt, rq irange.Range) *interaction.Interaction {
	inter := &interaction.Interaction{}
	p.helixHandler.TraceBack(inter, i1, i2)
	if len(inter.BPs) == 0 {
		return nil
	}
	last := inter.BPs[len(inter.BPs)-1]
	inter.E = p.energy.E(i1, last.I, i2, last.K, hybridE)
	inter.BPs = p.energy.ToExternal(inter.BPs)
	if err := inter.Validate(p.energy.Model, p.energy.AccT, p.energy.AccQ, p.energy.MaxIntLoop1, p.energy.MaxIntLoop2); err != nil {
		return nil
	}
	return inter
}
