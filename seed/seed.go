/*
Package seed implements the seed constraint (C10) and the seed DP handler
(C11): finding short perfectly- or near-perfectly-paired anchor regions that
predictor/SeedExtension later extends into full interactions.
*/
package seed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bebop-rna/intarna-go/accessibility"
	"github.com/bebop-rna/intarna-go/interaction"
)

// Constraint is the seed-search configuration (C10), mirroring the field
// list spec.md §3 gives for a seed: number of base pairs, allowed unpaired
// bases overall and per side, and a maximum accessibility-penalty budget.
type Constraint struct {
	BP             int
	MaxUnpOverall  int
	MaxUnp1        int
	MaxUnp2        int
	MaxE           float64
	NoGU           bool
	NoGUEnd        bool
}

// MaxLen1 is the widest target span a seed matching this constraint can
// occupy: BP paired positions plus however many may be unpaired on that side.
func (c *Constraint) MaxLen1() int { return c.BP + c.maxUnp1() }

// MaxLen2 is the query-side analog of MaxLen1.
func (c *Constraint) MaxLen2() int { return c.BP + c.maxUnp2() }

func (c *Constraint) maxUnp1() int {
	if c.MaxUnp1 < c.MaxUnpOverall {
		return c.MaxUnp1
	}
	return c.MaxUnpOverall
}

func (c *Constraint) maxUnp2() int {
	if c.MaxUnp2 < c.MaxUnpOverall {
		return c.MaxUnp2
	}
	return c.MaxUnpOverall
}

// Validate enforces the basic sanity invariants spec.md requires of a seed
// constraint before it is handed to a Handler.
func (c *Constraint) Validate() error {
	if c.BP < 2 {
		return fmt.Errorf("seed: BP must be >= 2, got %d", c.BP)
	}
	if c.MaxUnpOverall < 0 || c.MaxUnp1 < 0 || c.MaxUnp2 < 0 {
		return fmt.Errorf("seed: unpaired maxima must be non-negative")
	}
	return nil
}

// Handler searches for and reports seed interactions within a window (C11).
// Fill populates the handler's internal table over [i1Min,i1Max]x[i2Min,i2Max]
// and returns how many seeds were found.
type Handler interface {
	Fill(i1Min, i1Max, i2Min, i2Max int) (int, error)
	Next(si1, si2 *int, i1Max, i2Max int) bool
	E(si1, si2 int) float64
	Len1(si1, si2 int) int
	Len2(si1, si2 int) int
	TraceBack(inter *interaction.Interaction, si1, si2 int)
}

// seedEntry records one discovered seed anchored at (si1,si2).
type seedEntry struct {
	len1, len2 int
	e          float64
	bps        []interaction.BasePair
}

// baseHandler implements the table bookkeeping shared by MFEHandler and
// NoBulgeHandler; both only differ in how candidate seeds are generated.
type baseHandler struct {
	energy *interaction.Energy
	constr *Constraint
	table  map[[2]int]seedEntry
	keys   [][2]int
}

func newBaseHandler(energy *interaction.Energy, constr *Constraint) *baseHandler {
	return &baseHandler{energy: energy, constr: constr, table: map[[2]int]seedEntry{}}
}

func (h *baseHandler) add(si1, si2 int, entry seedEntry) {
	key := [2]int{si1, si2}
	if _, exists := h.table[key]; !exists {
		h.keys = append(h.keys, key)
	}
	h.table[key] = entry
}

func (h *baseHandler) E(si1, si2 int) float64 { return h.table[[2]int{si1, si2}].e }
func (h *baseHandler) Len1(si1, si2 int) int  { return h.table[[2]int{si1, si2}].len1 }
func (h *baseHandler) Len2(si1, si2 int) int  { return h.table[[2]int{si1, si2}].len2 }

func (h *baseHandler) TraceBack(inter *interaction.Interaction, si1, si2 int) {
	entry, ok := h.table[[2]int{si1, si2}]
	if !ok {
		return
	}
	inter.Seed = &interaction.SeedInfo{BPs: append([]interaction.BasePair(nil), entry.bps...), E: entry.e}
	inter.BPs = append(inter.BPs, entry.bps...)
}

func (h *baseHandler) Next(si1, si2 *int, i1Max, i2Max int) bool {
	for idx, key := range h.keys {
		if key[0] == *si1 && key[1] == *si2 {
			if idx+1 >= len(h.keys) {
				return false
			}
			next := h.keys[idx+1]
			*si1, *si2 = next[0], next[1]
			return true
		}
	}
	if len(h.keys) == 0 {
		return false
	}
	*si1, *si2 = h.keys[0][0], h.keys[0][1]
	return true
}

// MFEHandler finds, for every start position, the minimum-free-energy run of
// exactly BP consecutive complementary pairs within the configured unpaired
// budget, allowing gaps (bulges) between paired positions.
type MFEHandler struct{ *baseHandler }

// NewMFEHandler constructs a seed handler that allows small bulges between
// consecutive seed pairs, up to the configured unpaired maxima.
func NewMFEHandler(energy *interaction.Energy, constr *Constraint) *MFEHandler {
	return &MFEHandler{baseHandler: newBaseHandler(energy, constr)}
}

func (h *MFEHandler) Fill(i1Min, i1Max, i2Min, i2Max int) (int, error) {
	return fillSeeds(h.baseHandler, i1Min, i1Max, i2Min, i2Max, true)
}

// NoBulgeHandler is the MaxUnpOverall==0 specialization: seeds must be
// perfectly stacked runs of BP consecutive complementary base pairs.
type NoBulgeHandler struct{ *baseHandler }

// NewNoBulgeHandler constructs a seed handler with no tolerance for
// unpaired bases inside the seed.
func NewNoBulgeHandler(energy *interaction.Energy, constr *Constraint) *NoBulgeHandler {
	return &NoBulgeHandler{baseHandler: newBaseHandler(energy, constr)}
}

func (h *NoBulgeHandler) Fill(i1Min, i1Max, i2Min, i2Max int) (int, error) {
	return fillSeeds(h.baseHandler, i1Min, i1Max, i2Min, i2Max, false)
}

// fillSeeds is shared between MFEHandler and NoBulgeHandler; allowBulge
// toggles whether consecutive seed pairs may have gaps between them.
func fillSeeds(h *baseHandler, i1Min, i1Max, i2Min, i2Max int, allowBulge bool) (int, error) {
	bp := h.constr.BP
	if bp < 2 {
		return 0, fmt.Errorf("seed: fill requires BP>=2, got %d", bp)
	}
	found := 0
	for i1 := i1Min; i1 <= i1Max; i1++ {
		for i2 := i2Min; i2 <= i2Max; i2++ {
			entry, ok := extendSeed(h.energy, h.constr, i1, i2, i1Max, i2Max, allowBulge)
			if !ok {
				continue
			}
			if entry.e > h.constr.MaxE {
				continue
			}
			h.add(i1, i2, entry)
			found++
		}
	}
	return found, nil
}

// extendSeed greedily grows a run of BP complementary pairs starting at
// (i1,i2), consuming up to the configured unpaired budget on each side
// when allowBulge is set, and stacking energy via Energy.EInterLeft.
// Rejects any seed containing a G-U/U-G wobble pair when NoGU is set, or
// having one at either end when NoGUEnd is set.
func extendSeed(energy *interaction.Energy, constr *Constraint, i1, i2, i1Max, i2Max int, allowBulge bool) (seedEntry, bool) {
	if !energy.AreComplementary(i1, i2) {
		return seedEntry{}, false
	}
	if constr.NoGU && energy.IsWobble(i1, i2) {
		return seedEntry{}, false
	}
	if constr.NoGUEnd && energy.IsWobble(i1, i2) {
		return seedEntry{}, false
	}
	bps := []interaction.BasePair{{I: i1, K: i2}}
	total := energy.EInit()
	used1, used2 := 0, 0
	cur1, cur2 := i1, i2

	for len(bps) < constr.BP {
		next1, next2, ok := findNextPair(energy, constr, cur1, cur2, i1Max, i2Max, allowBulge, &used1, &used2)
		if !ok {
			return seedEntry{}, false
		}
		step := energy.EInterLeft(cur1, cur2, next1, next2)
		if step >= accUpperBound(energy) {
			return seedEntry{}, false
		}
		total += step
		bps = append(bps, interaction.BasePair{I: next1, K: next2})
		cur1, cur2 = next1, next2
	}

	last := bps[len(bps)-1]
	if constr.NoGUEnd && energy.IsWobble(last.I, last.K) {
		return seedEntry{}, false
	}
	return seedEntry{
		len1: last.I - i1 + 1,
		len2: last.K - i2 + 1,
		e:    total,
		bps:  bps,
	}, true
}

func accUpperBound(energy *interaction.Energy) float64 { return accessibility.UpperBoundKcal }

// findNextPair scans forward for the next complementary pair within the
// remaining unpaired budget.
func findNextPair(energy *interaction.Energy, constr *Constraint, cur1, cur2, i1Max, i2Max int, allowBulge bool, used1, used2 *int) (int, int, bool) {
	maxGap1 := 0
	maxGap2 := 0
	if allowBulge {
		maxGap1 = constr.maxUnp1() - *used1
		maxGap2 = constr.maxUnp2() - *used2
	}
	for g1 := 1; g1 <= maxGap1+1; g1++ {
		n1 := cur1 + g1
		if n1 > i1Max {
			break
		}
		for g2 := 1; g2 <= maxGap2+1; g2++ {
			n2 := cur2 + g2
			if n2 > i2Max {
				break
			}
			if !allowBulge && (g1 != 1 || g2 != 1) {
				continue
			}
			if !energy.AreComplementary(n1, n2) {
				continue
			}
			if constr.NoGU && energy.IsWobble(n1, n2) {
				continue
			}
			*used1 += g1 - 1
			*used2 += g2 - 1
			return n1, n2, true
		}
	}
	return 0, 0, false
}

// ExplicitHandler reports exactly the single seed given by a user-supplied
// dot-bar string instead of searching (spec.md §6's "startT<bpsT>&startQ<bpsQ>").
type ExplicitHandler struct {
	*baseHandler
	start1, start2 int
}

// NewExplicitHandler parses a dot-bar seed spec like "3|...|&7|...|" into a
// handler that reports exactly that one seed.
func NewExplicitHandler(energy *interaction.Energy, spec string) (*ExplicitHandler, error) {
	start1, bps1, start2, bps2, err := parseExplicitSpec(spec)
	if err != nil {
		return nil, err
	}
	if len(bps1) != len(bps2) {
		return nil, fmt.Errorf("seed: explicit seed pattern length mismatch: %d vs %d", len(bps1), len(bps2))
	}
	h := newBaseHandler(energy, &Constraint{BP: len(bps1)})
	var pairs []interaction.BasePair
	i1, i2 := start1, start2
	total := 0.0
	for idx := range bps1 {
		if bps1[idx] == '|' {
			pairs = append(pairs, interaction.BasePair{I: i1, K: i2})
			i1++
			i2++
		} else {
			i1++
		}
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("seed: explicit seed pattern has no paired positions")
	}
	h.add(start1, start2, seedEntry{
		len1: pairs[len(pairs)-1].I - start1 + 1,
		len2: pairs[len(pairs)-1].K - start2 + 1,
		e:    total,
		bps:  pairs,
	})
	return &ExplicitHandler{baseHandler: h, start1: start1, start2: start2}, nil
}

func (h *ExplicitHandler) Fill(i1Min, i1Max, i2Min, i2Max int) (int, error) {
	if h.start1 < i1Min || h.start1 > i1Max || h.start2 < i2Min || h.start2 > i2Max {
		return 0, nil
	}
	return 1, nil
}

// parseExplicitSpec parses "start1<pattern1>&start2<pattern2>" where each
// pattern is a run of '|' (paired) and '.' (unpaired) characters.
func parseExplicitSpec(spec string) (start1 int, bps1 string, start2 int, bps2 string, err error) {
	halves := strings.SplitN(spec, "&", 2)
	if len(halves) != 2 {
		return 0, "", 0, "", fmt.Errorf("seed: explicit spec %q missing '&' separator", spec)
	}
	start1, bps1, err = parseExplicitHalf(halves[0])
	if err != nil {
		return 0, "", 0, "", err
	}
	start2, bps2, err = parseExplicitHalf(halves[1])
	if err != nil {
		return 0, "", 0, "", err
	}
	return start1, bps1, start2, bps2, nil
}

func parseExplicitHalf(half string) (int, string, error) {
	idx := strings.IndexFunc(half, func(r rune) bool { return r == '|' || r == '.' })
	if idx < 0 {
		return 0, "", fmt.Errorf("seed: explicit half %q has no pattern", half)
	}
	start, err := strconv.Atoi(half[:idx])
	if err != nil {
		return 0, "", fmt.Errorf("seed: explicit half %q has invalid start: %w", half, err)
	}
	return start - 1, half[idx:], nil
}

// NewHandler dispatches to NoBulgeHandler when the constraint allows no
// unpaired bases at all, otherwise MFEHandler — the same choice the
// original implementation makes (see DESIGN.md for the documented decision).
func NewHandler(c *Constraint, energy *interaction.Energy) Handler {
	if c.MaxUnpOverall == 0 {
		return NewNoBulgeHandler(energy, c)
	}
	return NewMFEHandler(energy, c)
}
