/*
Package helix implements the helix-block constraint and DP handler (C12):
a coarser anchor than seed, allowing a whole run of stacked/near-stacked
base pairs to be scored as a single block for predictor.HelixBlock.
*/
package helix

import (
	"fmt"

	"github.com/bebop-rna/intarna-go/accessibility"
	"github.com/bebop-rna/intarna-go/interaction"
)

// Constraint configures the helix-block search.
type Constraint struct {
	MinBP               int
	MaxBP               int
	MaxInteriorLoopSize int
	MinPu               float64
	MaxE                float64
	UseFullE            bool
}

// Validate enforces the basic size invariants a helix-block search needs.
func (c *Constraint) Validate() error {
	if c.MinBP < 2 {
		return fmt.Errorf("helix: MinBP must be >= 2, got %d", c.MinBP)
	}
	if c.MaxBP < c.MinBP {
		return fmt.Errorf("helix: MaxBP (%d) must be >= MinBP (%d)", c.MaxBP, c.MinBP)
	}
	if c.MaxInteriorLoopSize < 0 {
		return fmt.Errorf("helix: MaxInteriorLoopSize must be non-negative, got %d", c.MaxInteriorLoopSize)
	}
	return nil
}

type helixEntry struct {
	len1, len2 int
	bpCount    int
	e          float64
	bps        []interaction.BasePair
}

// Handler finds and reports helix blocks anchored at a starting pair (C12).
type Handler struct {
	energy *interaction.Energy
	constr *Constraint
	table  map[[2]int]helixEntry
}

// NewHandler constructs a helix handler over energy constrained by c.
func NewHandler(c *Constraint, energy *interaction.Energy) *Handler {
	return &Handler{energy: energy, constr: c, table: map[[2]int]helixEntry{}}
}

// Fill searches every (i1,i2) start in the given window for the best helix
// block anchored there: a run of complementary pairs extended greedily, each
// step taking the first complementary pair found within interior-loop gaps
// up to MaxInteriorLoopSize (so the run is not necessarily the longest),
// capped at MaxBP pairs, kept only if it reaches MinBP pairs and its energy
// is within MaxE.
func (h *Handler) Fill(i1Min, i1Max, i2Min, i2Max int) (int, error) {
	if err := h.constr.Validate(); err != nil {
		return 0, err
	}
	found := 0
	for i1 := i1Min; i1 <= i1Max; i1++ {
		for i2 := i2Min; i2 <= i2Max; i2++ {
			entry, ok := h.extend(i1, i2, i1Max, i2Max)
			if !ok {
				continue
			}
			if entry.bpCount < h.constr.MinBP {
				continue
			}
			if entry.e > h.constr.MaxE {
				continue
			}
			h.table[[2]int{i1, i2}] = entry
			found++
		}
	}
	return found, nil
}

func (h *Handler) extend(i1, i2, i1Max, i2Max int) (helixEntry, bool) {
	if !h.energy.AreComplementary(i1, i2) {
		return helixEntry{}, false
	}
	bps := []interaction.BasePair{{I: i1, K: i2}}
	total := h.energy.EInit()
	cur1, cur2 := i1, i2
	for len(bps) < h.constr.MaxBP {
		next1, next2, ok := h.findNext(cur1, cur2, i1Max, i2Max)
		if !ok {
			break
		}
		step := h.energy.EInterLeft(cur1, cur2, next1, next2)
		if step >= accessibility.UpperBoundKcal {
			break
		}
		total += step
		bps = append(bps, interaction.BasePair{I: next1, K: next2})
		cur1, cur2 = next1, next2
	}
	last := bps[len(bps)-1]
	return helixEntry{
		len1:    last.I - i1 + 1,
		len2:    last.K - i2 + 1,
		bpCount: len(bps),
		e:       total,
		bps:     bps,
	}, true
}

func (h *Handler) findNext(cur1, cur2, i1Max, i2Max int) (int, int, bool) {
	maxGap := h.constr.MaxInteriorLoopSize
	for g1 := 1; g1 <= maxGap+1; g1++ {
		n1 := cur1 + g1
		if n1 > i1Max {
			break
		}
		for g2 := 1; g2 <= maxGap+1; g2++ {
			n2 := cur2 + g2
			if n2 > i2Max {
				break
			}
			if h.energy.AreComplementary(n1, n2) {
				return n1, n2, true
			}
		}
	}
	return 0, 0, false
}

// E returns the helix-block energy anchored at (i1,i2), or +Inf-equivalent
// UpperBoundKcal plus false when no block was found there.
func (h *Handler) E(i1, i2 int) (float64, bool) {
	entry, ok := h.table[[2]int{i1, i2}]
	if !ok {
		return accessibility.UpperBoundKcal, false
	}
	return entry.e, true
}

// Len1 and Len2 report the target/query span of the helix block anchored
// at (i1,i2).
func (h *Handler) Len1(i1, i2 int) int { return h.table[[2]int{i1, i2}].len1 }
func (h *Handler) Len2(i1, i2 int) int { return h.table[[2]int{i1, i2}].len2 }

// BPCount reports how many base pairs the helix block anchored at (i1,i2)
// contains.
func (h *Handler) BPCount(i1, i2 int) int { return h.table[[2]int{i1, i2}].bpCount }

// TraceBack appends the helix block's base pairs to inter.
func (h *Handler) TraceBack(inter *interaction.Interaction, i1, i2 int) {
	entry, ok := h.table[[2]int{i1, i2}]
	if !ok {
		return
	}
	inter.BPs = append(inter.BPs, entry.bps...)
}
