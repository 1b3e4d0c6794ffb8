package predictor

import "github.com/bebop-rna/intarna-go/interaction"

// candidate is one suboptimal interaction awaiting the top-k cut.
type candidate struct {
	inter *interaction.Interaction
	start1, start2 int
}

// topk keeps the k lowest-energy non-overlapping candidates seen so far,
// applying spec.md §4.7's overlap policy: two candidates "overlap" if they
// share any target or query position, in which case only the lower-energy
// one survives. Heuristic predictors overwrite the existing candidate at a
// given start with the latest one found (greedy); exact predictors keep the
// first one found at a given energy (stable), matching the documented
// tie-break decision in DESIGN.md.
type topk struct {
	k         int
	heuristic bool
	items     []candidate
}

// newTopK constructs a buffer that retains at most k results.
func newTopK(k int, heuristic bool) *topk {
	if k <= 0 {
		k = 1
	}
	return &topk{k: k, heuristic: heuristic}
}

// overlaps reports whether a and b share any target or query position.
func overlaps(a, b candidate) bool {
	if a.start1 == b.start1 && a.start2 == b.start2 {
		return true
	}
	aMin1, aMax1 := rangeOf(a.inter, true)
	bMin1, bMax1 := rangeOf(b.inter, true)
	aMin2, aMax2 := rangeOf(a.inter, false)
	bMin2, bMax2 := rangeOf(b.inter, false)
	return (aMin1 <= bMax1 && bMin1 <= aMax1) || (aMin2 <= bMax2 && bMin2 <= aMax2)
}

func rangeOf(inter *interaction.Interaction, target bool) (int, int) {
	if len(inter.BPs) == 0 {
		return 0, -1
	}
	min, max := inter.BPs[0].I, inter.BPs[0].I
	if !target {
		min, max = inter.BPs[0].K, inter.BPs[0].K
	}
	for _, bp := range inter.BPs {
		v := bp.I
		if !target {
			v = bp.K
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Offer inserts a new candidate, rejecting it outright when it is worse
// than every existing overlapping candidate, replacing the overlapping one
// when it is better (or, for heuristic predictors, whenever start matches),
// and otherwise appending and trimming to k by energy.
func (t *topk) Offer(inter *interaction.Interaction, start1, start2 int) {
	cand := candidate{inter: inter, start1: start1, start2: start2}
	for i, existing := range t.items {
		if overlaps(cand, existing) {
			if t.heuristic {
				if cand.inter.E <= existing.inter.E {
					t.items[i] = cand
				}
				return
			}
			if cand.inter.E < existing.inter.E {
				t.items[i] = cand
			}
			return
		}
	}
	t.items = append(t.items, cand)
	t.sortAndTrim()
}

func (t *topk) sortAndTrim() {
	for i := 1; i < len(t.items); i++ {
		for j := i; j > 0 && t.items[j].inter.E < t.items[j-1].inter.E; j-- {
			t.items[j], t.items[j-1] = t.items[j-1], t.items[j]
		}
	}
	if len(t.items) > t.k {
		t.items = t.items[:t.k]
	}
}

// Results returns the retained interactions in ascending-energy order.
func (t *topk) Results() []*interaction.Interaction {
	out := make([]*interaction.Interaction, len(t.items))
	for i, c := range t.items {
		out[i] = c.inter
	}
	return out
}
