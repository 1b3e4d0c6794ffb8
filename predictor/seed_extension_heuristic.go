package predictor

import (
	"github.com/bebop-rna/intarna-go/interaction"
	"github.com/bebop-rna/intarna-go/irange"
	"github.com/bebop-rna/intarna-go/seed"
)

// SeedExtensionHeuristic is SeedExtension's greedy-overwrite sibling: for
// every seed start it keeps only the single best-boundary extension found,
// using the heuristic topk overwrite-on-overlap rule instead of the exact
// predictor's keep-first rule (documented tie-break decision in DESIGN.md).
type SeedExtensionHeuristic struct {
	base
	seedHandler seed.Handler
	noLP        bool
}

// NewSeedExtensionHeuristic constructs the heuristic seed-extension predictor.
func NewSeedExtensionHeuristic(energy *interaction.Energy, seedHandler seed.Handler, k int, noLP bool) *SeedExtensionHeuristic {
	return &SeedExtensionHeuristic{base: newBase(energy, k, true), seedHandler: seedHandler, noLP: noLP}
}

func (p *SeedExtensionHeuristic) Predict(rangeT, rangeQ irange.Range) error {
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
		inter := extendSeedBothWays(p.energy, p.seedHandler, si1, si2, rt, rq, p.noLP)
		if inter != nil {
			p.topK.Offer(inter, si1, si2)
		}
	}
	return p.advance(stateOptimaStreamed)
}
