package predictor

import (
	"github.com/bebop-rna/intarna-go/interaction"
	"github.com/bebop-rna/intarna-go/irange"
	"github.com/bebop-rna/intarna-go/seed"
)

// SeedOnly is spec.md §4.7's Model 'S': every valid seed found in the
// window is reported verbatim, with no left/right extension.
type SeedOnly struct {
	base
	seedHandler seed.Handler
}

// NewSeedOnly constructs a predictor that reports seeds as-is.
func NewSeedOnly(energy *interaction.Energy, seedHandler seed.Handler, k int) *SeedOnly {
	return &SeedOnly{base: newBase(energy, k, false), seedHandler: seedHandler}
}

func (p *SeedOnly) Predict(rangeT, rangeQ irange.Range) error {
	if err := p.beginPredict(); err != nil {
		return err
	}
	n1, n2 := p.energy.Index1().Len(), p.energy.Index2().Len()
	rt := clampRange(rangeT, n1)
	rq := clampRange(rangeQ, n2)

	if _, err := p.seedHandler.Fill(rt.From, rt.To, rq.From, rq.To); err != nil {
		return err
	}
	if err := p.advance(stateTablesBuilt); err != nil {
		return err
	}

	si1, si2 := -1, -1
	for p.seedHandler.Next(&si1, &si2, rt.To, rq.To) {
		seedInter := &interaction.Interaction{}
		p.seedHandler.TraceBack(seedInter, si1, si2)
		if len(seedInter.BPs) == 0 {
			continue
		}
		first, last := seedInter.BPs[0], seedInter.BPs[len(seedInter.BPs)-1]
		seedInter.E = p.energy.E(first.I, last.I, first.K, last.K, p.seedHandler.E(si1, si2))
		seedInter.BPs = p.energy.ToExternal(seedInter.BPs)
		if seedInter.Seed != nil {
			seedInter.Seed.BPs = p.energy.ToExternal(seedInter.Seed.BPs)
		}
		if err := seedInter.Validate(p.energy.Model, p.energy.AccT, p.energy.AccQ, p.energy.MaxIntLoop1, p.energy.MaxIntLoop2); err != nil {
			continue
		}
		p.topK.Offer(seedInter, si1, si2)
	}
	return p.advance(stateOptimaStreamed)
}
