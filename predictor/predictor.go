package predictor

import (
	"fmt"

	"github.com/bebop-rna/intarna-go/accessibility"
	"github.com/bebop-rna/intarna-go/interaction"
	"github.com/bebop-rna/intarna-go/irange"
)

// state is the 5-state machine every Predictor implementation advances
// through exactly once per Predict call (spec.md §4.7): Init, then
// TablesBuilt once the DP recursion has run, OptimaStreamed once every
// result has been offered to the shared topk buffer, Reported once the
// caller has pulled Results(), and Done once no further calls are allowed.
type state int

const (
	stateInit state = iota
	stateTablesBuilt
	stateOptimaStreamed
	stateReported
	stateDone
)

// Predictor is the DP-engine interface every concrete algorithm implements.
type Predictor interface {
	Predict(rangeT, rangeQ irange.Range) error
	Results() []*interaction.Interaction
}

// base holds the fields and state-machine guard shared by every concrete
// Predictor, so each engine file only implements its own recursion.
type base struct {
	energy *interaction.Energy
	topK   *topk
	st     state
}

func newBase(energy *interaction.Energy, k int, heuristic bool) base {
	return base{energy: energy, topK: newTopK(k, heuristic), st: stateInit}
}

// advance enforces the Init->TablesBuilt->OptimaStreamed->Reported->Done
// ordering: each call must be one step ahead of the last, and Predict may
// only be invoked from Init (no re-entrant Predict calls on one instance).
func (b *base) advance(to state) error {
	if to != b.st+1 {
		return fmt.Errorf("predictor: invalid state transition %d -> %d", b.st, to)
	}
	b.st = to
	return nil
}

func (b *base) beginPredict() error {
	if b.st != stateInit {
		return fmt.Errorf("predictor: Predict already called on this instance")
	}
	return nil
}

func (b *base) Results() []*interaction.Interaction {
	if b.st < stateOptimaStreamed {
		return nil
	}
	b.st = stateReported
	return b.topK.Results()
}

// clampRange clips r to [0, n-1], used when a caller-supplied window
// extends past a short sequence.
func clampRange(r irange.Range, n int) irange.Range {
	from, to := r.From, r.To
	if from < 0 {
		from = 0
	}
	if to > n-1 {
		to = n - 1
	}
	return irange.Range{From: from, To: to}
}

const unset = accessibility.UpperBoundKcal

// greedyChainForward grows a chain of complementary pairs starting at
// (i1,i2) toward increasing indices, repeatedly taking the single cheapest
// next step within the energy's interior-loop bound, stopping once no
// improving continuation remains. Shared by Mfe2DHeuristic and the seed
// extension predictors' rightward growth.
func greedyChainForward(energy *interaction.Energy, i1, i2, j1Max, j2Max int) ([]interaction.BasePair, float64) {
	if i1 > j1Max || i2 > j2Max || !energy.AreComplementary(i1, i2) {
		return nil, 0
	}
	bps := []interaction.BasePair{{I: i1, K: i2}}
	hybridE := 0.0
	cur1, cur2 := i1, i2
	for {
		bestStep := unset
		bestK1, bestK2 := -1, -1
		for k1 := cur1 + 1; k1 <= j1Max && k1 <= cur1+energy.MaxIntLoop1+1; k1++ {
			for k2 := cur2 + 1; k2 <= j2Max && k2 <= cur2+energy.MaxIntLoop2+1; k2++ {
				if !energy.AreComplementary(k1, k2) {
					continue
				}
				step := energy.EInterLeft(cur1, cur2, k1, k2)
				if step < bestStep {
					bestStep, bestK1, bestK2 = step, k1, k2
				}
			}
		}
		if bestK1 < 0 || bestStep >= 0 {
			break
		}
		hybridE += bestStep
		bps = append(bps, interaction.BasePair{I: bestK1, K: bestK2})
		cur1, cur2 = bestK1, bestK2
	}
	return bps, hybridE
}

// greedyChainBackward is greedyChainForward's mirror image: it grows a
// chain ENDING at (i1,i2) toward decreasing indices and returns it in
// ascending (5'->3') order, ready to prepend to a seed's base-pair list.
func greedyChainBackward(energy *interaction.Energy, i1, i2, j1Min, j2Min int) ([]interaction.BasePair, float64) {
	if i1 < j1Min || i2 < j2Min || !energy.AreComplementary(i1, i2) {
		return nil, 0
	}
	bps := []interaction.BasePair{{I: i1, K: i2}}
	hybridE := 0.0
	cur1, cur2 := i1, i2
	for {
		bestStep := unset
		bestK1, bestK2 := -1, -1
		for k1 := cur1 - 1; k1 >= j1Min && k1 >= cur1-energy.MaxIntLoop1-1; k1-- {
			for k2 := cur2 - 1; k2 >= j2Min && k2 >= cur2-energy.MaxIntLoop2-1; k2-- {
				if !energy.AreComplementary(k1, k2) {
					continue
				}
				step := energy.EInterLeft(k1, k2, cur1, cur2)
				if step < bestStep {
					bestStep, bestK1, bestK2 = step, k1, k2
				}
			}
		}
		if bestK1 < 0 || bestStep >= 0 {
			break
		}
		hybridE += bestStep
		bps = append(bps, interaction.BasePair{I: bestK1, K: bestK2})
		cur1, cur2 = bestK1, bestK2
	}
	for l, r := 0, len(bps)-1; l < r; l, r = l+1, r-1 {
		bps[l], bps[r] = bps[r], bps[l]
	}
	return bps, hybridE
}

// extendOneSide grows a chain outward from a fixed anchor pair (typically
// a seed boundary), choosing the best single connecting step and then
// continuing greedily. When noLP is set the connecting step is restricted
// to the position immediately adjacent to the anchor (a zero-length loop,
// i.e. a stack), matching spec.md §4.7's noLP-adjacent-to-seed rule; when
// unset, the connecting step may bulge up to the energy's interior-loop
// bound like any other step.
func extendOneSide(energy *interaction.Energy, anchor1, anchor2, limit1, limit2 int, forward, noLP bool) ([]interaction.BasePair, float64) {
	maxGap1, maxGap2 := energy.MaxIntLoop1, energy.MaxIntLoop2
	if noLP {
		maxGap1, maxGap2 = 0, 0
	}
	bestStep := unset
	bestC1, bestC2 := -1, -1
	if forward {
		for c1 := anchor1 + 1; c1 <= limit1 && c1 <= anchor1+maxGap1+1; c1++ {
			for c2 := anchor2 + 1; c2 <= limit2 && c2 <= anchor2+maxGap2+1; c2++ {
				if !energy.AreComplementary(c1, c2) {
					continue
				}
				step := energy.EInterLeft(anchor1, anchor2, c1, c2)
				if step < bestStep {
					bestStep, bestC1, bestC2 = step, c1, c2
				}
			}
		}
	} else {
		for c1 := anchor1 - 1; c1 >= limit1 && c1 >= anchor1-maxGap1-1; c1-- {
			for c2 := anchor2 - 1; c2 >= limit2 && c2 >= anchor2-maxGap2-1; c2-- {
				if !energy.AreComplementary(c1, c2) {
					continue
				}
				step := energy.EInterLeft(c1, c2, anchor1, anchor2)
				if step < bestStep {
					bestStep, bestC1, bestC2 = step, c1, c2
				}
			}
		}
	}
	if bestC1 < 0 {
		return nil, 0
	}
	var rest []interaction.BasePair
	var restE float64
	if forward {
		rest, restE = greedyChainForward(energy, bestC1, bestC2, limit1, limit2)
	} else {
		rest, restE = greedyChainBackward(energy, bestC1, bestC2, limit1, limit2)
	}
	return rest, bestStep + restE
}
