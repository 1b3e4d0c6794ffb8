/*
Package interaction implements the inter-molecular interaction-energy
composition (C7), an index-offset decorator for window-local predictors
(C8), and the resulting Interaction/BasePair value types with their
validating invariants (C9).
*/
package interaction

import (
	"fmt"
	"math"

	"github.com/bebop-rna/intarna-go/accessibility"
	"github.com/bebop-rna/intarna-go/energymodel"
	energyparams "github.com/bebop-rna/intarna-go/energy_params"
	"github.com/bebop-rna/intarna-go/rna"
)

// Energy composes inter-molecular hybridization energy with intra-molecular
// accessibility penalties for one (target, query) pair. E computes
//
//	E = hybridE + ED1 + ED2 + Pr(left)*EdangleLeft + Pr(right)*EdangleRight + EendLeft + EendRight
//
// where hybridE (initiation plus stacks and loops) is supplied by the caller.
type Energy struct {
	AccT, AccQ   accessibility.Accessibility
	Model        energymodel.Model
	MaxIntLoop1  int
	MaxIntLoop2  int
}

// NewEnergy constructs an Energy composition over a target/query pair.
func NewEnergy(accT, accQ accessibility.Accessibility, model energymodel.Model, maxIntLoop1, maxIntLoop2 int) *Energy {
	return &Energy{AccT: accT, AccQ: accQ, Model: model, MaxIntLoop1: maxIntLoop1, MaxIntLoop2: maxIntLoop2}
}

// Index1 and Index2 expose the underlying sequences for callers that only
// have an Energy reference (used by the predictors and by Offset).
func (e *Energy) Index1() *rna.Sequence { return e.AccT.Sequence() }
func (e *Energy) Index2() *rna.Sequence { return e.AccQ.Sequence() }

// RT returns the thermodynamic RT of the underlying energy model.
func (e *Energy) RT() float64 { return e.Model.RT() }

// BoltzmannWeight converts a free energy into its relative Boltzmann weight
// exp(-E/RT).
func (e *Energy) BoltzmannWeight(energyKcal float64) float64 {
	return math.Exp(-energyKcal / e.RT())
}

// AreComplementary reports whether target position i1 and query position i2
// can pair. Both indices address their sequences directly, 5'->3'; the DP
// walks i1 and i2 in lockstep increasing order, and it is only the final
// reported base-pair list (see ToExternal) that mirrors the query side back
// into the antiparallel, descending coordinate spec.md reports.
func (e *Energy) AreComplementary(i1, i2 int) bool {
	return rna.AreComplementary(e.AccT.Sequence(), e.AccQ.Sequence(), i1, i2)
}

// BasePair returns the encoded base-pair type for target position i1
// paired with query position i2, using the target's 5'->3' base as the
// first base of the pair.
func (e *Energy) BasePair(i1, i2 int) (energymodel.BasePairType, bool) {
	return e.Model.BasePairType(e.AccT.Sequence().At(i1), e.AccQ.Sequence().At(i2))
}

// IsWobble reports whether target position i1 paired with query position i2
// is a G-U/U-G wobble pair, used by package seed to enforce noGU/noGUend.
func (e *Energy) IsWobble(i1, i2 int) bool {
	bp, ok := e.BasePair(i1, i2)
	if !ok {
		return false
	}
	return bp == energyparams.GU || bp == energyparams.UG
}

// EInit is the duplex initiation energy charged once per interaction, at
// the innermost base pair of the DP recursion (see predictor's fillCell*
// base cases) rather than by E itself, matching getE's assumption that
// hybridE already carries it.
func (e *Energy) EInit() float64 { return e.Model.EInit() }

// EInterLeft is the interior-loop/stack energy between an outer pair
// (i1,i2) and the next inner pair (k1,k2) moving toward increasing indices.
func (e *Energy) EInterLeft(i1, i2, k1, k2 int) float64 {
	outer, ok1 := e.BasePair(i1, i2)
	inner, ok2 := e.BasePair(k1, k2)
	if !ok1 || !ok2 {
		return accessibility.UpperBoundKcal
	}
	loopLen1 := k1 - i1 - 1
	loopLen2 := k2 - i2 - 1
	if loopLen1 < 0 || loopLen2 < 0 {
		return accessibility.UpperBoundKcal
	}
	if loopLen1 > e.MaxIntLoop1 || loopLen2 > e.MaxIntLoop2 {
		return accessibility.UpperBoundKcal
	}
	if loopLen1 == 0 && loopLen2 == 0 {
		return e.Model.Stack(outer, inner)
	}
	return e.Model.InteriorLoop(outer, inner, loopLen1, loopLen2)
}

// EDanglingLeft is the 5' dangling-end contribution at the left boundary of
// the interaction in the target strand.
func (e *Energy) EDanglingLeft(i1, i2 int) float64 {
	bp, ok := e.BasePair(i1, i2)
	if !ok || i1 == 0 {
		return 0
	}
	return e.Model.Dangle5(bp, e.AccT.Sequence().Code(i1-1))
}

// EDanglingRight is the 3' dangling-end contribution at the right boundary.
func (e *Energy) EDanglingRight(j1, j2 int) float64 {
	bp, ok := e.BasePair(j1, j2)
	if !ok || j1 == e.AccT.Sequence().Len()-1 {
		return 0
	}
	return e.Model.Dangle3(bp, e.AccT.Sequence().Code(j1+1))
}

// EEndLeft is the terminal-AU-style penalty at the leftmost base pair.
func (e *Energy) EEndLeft(i1, i2 int) float64 {
	bp, ok := e.BasePair(i1, i2)
	if !ok {
		return 0
	}
	return e.Model.TerminalAU(bp)
}

// EEndRight is the terminal-AU-style penalty at the rightmost base pair.
func (e *Energy) EEndRight(j1, j2 int) float64 {
	bp, ok := e.BasePair(j1, j2)
	if !ok {
		return 0
	}
	return e.Model.TerminalAU(bp)
}

// ED1 is the target's accessibility penalty over [i1,j1].
func (e *Energy) ED1(i1, j1 int) float64 { return e.AccT.GetED(i1, j1) }

// ED2 is the query's accessibility penalty over [i2,j2].
func (e *Energy) ED2(i2, j2 int) float64 { return e.AccQ.GetED(i2, j2) }

// prDanglingLeft is the probability that the positions immediately left of
// the interaction (i1-1, i2-1) are unpaired, approximated per spec.md's
// exp(-(ED(i-1)-ED(i))/RT) ratio clamped to [0,1] in each strand and
// combined as the product of both strands' probabilities. At a sequence
// boundary there is no such position, so that strand's factor is 1.
func (e *Energy) prDanglingLeft(i1, j1, i2, j2 int) float64 {
	p1, p2 := 1.0, 1.0
	if i1 > 0 {
		p1 = clampUnit(e.BoltzmannWeight(e.ED1(i1-1, j1) - e.ED1(i1, j1)))
	}
	if i2 > 0 {
		p2 = clampUnit(e.BoltzmannWeight(e.ED2(i2-1, j2) - e.ED2(i2, j2)))
	}
	return p1 * p2
}

// prDanglingRight is the right-boundary analog of prDanglingLeft.
func (e *Energy) prDanglingRight(i1, j1, i2, j2 int) float64 {
	p1, p2 := 1.0, 1.0
	if j1+1 < e.AccT.Sequence().Len() {
		p1 = clampUnit(e.BoltzmannWeight(e.ED1(i1, j1+1) - e.ED1(i1, j1)))
	}
	if j2+1 < e.AccQ.Sequence().Len() {
		p2 = clampUnit(e.BoltzmannWeight(e.ED2(i2, j2+1) - e.ED2(i2, j2)))
	}
	return p1 * p2
}

func clampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// E composes the full interaction free energy for an interaction spanning
// [i1,j1] on the target and [i2,j2] on the query, given the already-summed
// hybridization energy hybridE (duplex initiation plus stacks and loops,
// charged once at the DP recursion's innermost cell — see fillCell2D/
// fillCell's base case — not added again here). Dangling ends are weighted
// by the probability that the adjacent position is unpaired; helix-end
// penalties are always charged in full.
func (e *Energy) E(i1, j1, i2, j2 int, hybridE float64) float64 {
	return hybridE +
		e.ED1(i1, j1) + e.ED2(i2, j2) +
		e.EDanglingLeft(i1, i2)*e.prDanglingLeft(i1, j1, i2, j2) +
		e.EDanglingRight(j1, j2)*e.prDanglingRight(i1, j1, i2, j2) +
		e.EEndLeft(i1, i2) + e.EEndRight(j1, j2)
}

// ToExternal translates a base-pair list from the DP's internal coordinate,
// where both strands are walked in lockstep increasing order, into the
// antiparallel coordinate spec.md reports: the target side is unchanged,
// the query side is mirrored via n-1-k (spec.md's getIndex2) so K descends
// 5'->3' the way a real duplex's second strand does.
func (e *Energy) ToExternal(bps []BasePair) []BasePair {
	n := e.AccQ.Sequence().Len()
	out := make([]BasePair, len(bps))
	for i, bp := range bps {
		out[i] = BasePair{I: bp.I, K: n - 1 - bp.K}
	}
	return out
}

// BasePair identifies one base pair of an Interaction, I on the target
// side, K on the query side: I ascending 5'->3' on the target, K descending
// 5'->3' on the query per the antiparallel duplex (spec.md's Interaction
// invariant).
type BasePair struct {
	I, K int
}

// SeedInfo records the seed sub-interaction embedded in a full Interaction,
// if the predictor that produced it used a seed constraint.
type SeedInfo struct {
	BPs []BasePair
	E   float64
}

// Interaction is the predicted result: an ordered list of base pairs plus
// the total free energy and, optionally, the seed that anchored it.
type Interaction struct {
	BPs  []BasePair
	E    float64
	Seed *SeedInfo
}

// Validate checks the structural invariants every predictor must satisfy
// before handing a result to package output: complementarity of every base
// pair, strict monotonicity of indices in both strands, and that every
// consecutive pair gap is within the configured interior-loop bound.
func (inter *Interaction) Validate(model energymodel.Model, accT, accQ accessibility.Accessibility, maxIntLoop1, maxIntLoop2 int) error {
	if len(inter.BPs) == 0 {
		return fmt.Errorf("interaction: empty interaction has no base pairs")
	}
	n2 := accQ.Sequence().Len()
	for idx, bp := range inter.BPs {
		// bp.K is reported in ToExternal's mirrored, antiparallel coordinate
		// (n-1-k); undo that mirror to recover the real query array index
		// before checking against the query's actual letters.
		if !rna.AreComplementary(accT.Sequence(), accQ.Sequence(), bp.I, n2-1-bp.K) {
			return fmt.Errorf("interaction: base pair %d (%d,%d) is not complementary", idx, bp.I, bp.K)
		}
		if idx == 0 {
			continue
		}
		prev := inter.BPs[idx-1]
		if bp.I <= prev.I {
			return fmt.Errorf("interaction: target indices not strictly increasing at pair %d", idx)
		}
		if bp.K >= prev.K {
			return fmt.Errorf("interaction: query indices not strictly decreasing at pair %d", idx)
		}
		if bp.I-prev.I-1 > maxIntLoop1 || prev.K-bp.K-1 > maxIntLoop2 {
			return fmt.Errorf("interaction: interior loop between pairs %d,%d exceeds configured bound", idx-1, idx)
		}
	}
	return nil
}
