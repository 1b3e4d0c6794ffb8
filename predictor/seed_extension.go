package predictor

import (
	"github.com/bebop-rna/intarna-go/interaction"
	"github.com/bebop-rna/intarna-go/irange"
	"github.com/bebop-rna/intarna-go/seed"
)

// SeedExtension anchors on every seed found by a seed.Handler and grows it
// left and right by chained complementary pairs (spec.md §4.7's
// PredictorMfe4dSeedExtension/PredictorMfe2dSeedExtension, unified here
// since both extend the same way regardless of the underlying seed
// search's memory layout). When noLP is set, the pair immediately adjacent
// to the seed on each side is forced to stack against it (zero-length
// loop) before any further greedy growth is attempted, per the documented
// DESIGN.md decision on noLP-at-seed-boundary semantics.
type SeedExtension struct {
	base
	seedHandler seed.Handler
	noLP        bool
}

// NewSeedExtension constructs a seed-anchored exact-chain predictor.
func NewSeedExtension(energy *interaction.Energy, seedHandler seed.Handler, k int, noLP bool) *SeedExtension {
	return &SeedExtension{base: newBase(energy, k, false), seedHandler: seedHandler, noLP: noLP}
}

func (p *SeedExtension) Predict(rangeT, rangeQ irange.Range) error {
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

// extendSeedBothWays builds the full interaction anchored on a seed: a
// greedy leftward chain, the seed's own base pairs, and a greedy rightward
// chain, stitched together by the connecting interior-loop energies.
func extendSeedBothWays(energy *interaction.Energy, h seed.Handler, si1, si2 int, rt, rq irange.Range, noLP bool) *interaction.Interaction {
	seedLen1 := h.Len1(si1, si2)
	seedLen2 := h.Len2(si1, si2)
	seedE := h.E(si1, si2)
	seedEnd1 := si1 + seedLen1 - 1
	seedEnd2 := si2 + seedLen2 - 1

	seedInter := &interaction.Interaction{}
	h.TraceBack(seedInter, si1, si2)
	if len(seedInter.BPs) == 0 {
		return nil
	}

	hybridE := seedE
	bps := make([]interaction.BasePair, 0, len(seedInter.BPs)+4)

	leftBPs, leftE := extendOneSide(energy, si1, si2, rt.From, rq.From, false, noLP)
	bps = append(bps, leftBPs...)
	hybridE += leftE

	bps = append(bps, seedInter.BPs...)

	rightBPs, rightE := extendOneSide(energy, seedEnd1, seedEnd2, rt.To, rq.To, true, noLP)
	bps = append(bps, rightBPs...)
	hybridE += rightE

	i1, i2 := bps[0].I, bps[0].K
	j1, j2 := bps[len(bps)-1].I, bps[len(bps)-1].K
	total := energy.E(i1, j1, i2, j2, hybridE)
	inter := &interaction.Interaction{
		BPs:  energy.ToExternal(bps),
		E:    total,
		Seed: &interaction.SeedInfo{BPs: energy.ToExternal(seedInter.BPs), E: seedE},
	}
	if err := inter.Validate(energy.Model, energy.AccT, energy.AccQ, energy.MaxIntLoop1, energy.MaxIntLoop2); err != nil {
		return nil
	}
	return inter
}
