/*
Package irange implements closed, 0-based index ranges and sorted range
lists, used to subset sequences (--tRange/--qRange) and to decompose long
sequences into overlapping accessibility/prediction windows.

Parsing splits the comma-separated range list with the strings package and
converts each bound with strconv.
*/
package irange

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Range is a closed, 0-based, inclusive index range [From, To].
type Range struct {
	From, To int
}

// Overlaps reports whether r and other share at least one index.
func (r Range) Overlaps(other Range) bool {
	return r.From <= other.To && other.From <= r.To
}

// Contains reports whether i falls within r.
func (r Range) Contains(i int) bool {
	return i >= r.From && i <= r.To
}

// Len returns the number of indices covered by r.
func (r Range) Len() int {
	return r.To - r.From + 1
}

// List is a sorted, non-overlapping-by-convention collection of ranges.
type List []Range

// String re-renders the list in 1-based "from-to,from-to" form.
func (l List) String() string {
	parts := make([]string, len(l))
	for i, r := range l {
		parts[i] = fmt.Sprintf("%d-%d", r.From+1, r.To+1)
	}
	return strings.Join(parts, ",")
}

// ParseRanges parses a 1-based "from1-to1,from2-to2,..." string into a
// sorted, validated 0-based List. n is the length of the sequence the
// ranges apply to, used to bounds-check each range.
func ParseRanges(s string, n int) (List, error) {
	if strings.TrimSpace(s) == "" {
		return List{{From: 0, To: n - 1}}, nil
	}
	var list List
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.SplitN(part, "-", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("irange: malformed range %q, expected from-to", part)
		}
		from1, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
		if err != nil {
			return nil, fmt.Errorf("irange: invalid start in %q: %w", part, err)
		}
		to1, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
		if err != nil {
			return nil, fmt.Errorf("irange: invalid end in %q: %w", part, err)
		}
		from, to := from1-1, to1-1
		if from < 0 || to < from || to >= n {
			return nil, fmt.Errorf("irange: range %q out of bounds for sequence of length %d", part, n)
		}
		list = append(list, Range{From: from, To: to})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].From < list[j].From })
	return list, nil
}

// Windows decomposes the ranges in l into overlapping windows of the given
// width, advancing by (width - overlap) each step, the decomposition the
// Orchestrator uses to bound DP-table memory on long sequences.
func (l List) Windows(width, overlap int) []Range {
	if width <= 0 {
		return append([]Range(nil), l...)
	}
	step := width - overlap
	if step <= 0 {
		step = 1
	}
	var windows []Range
	for _, r := range l {
		if r.Len() <= width {
			windows = append(windows, r)
			continue
		}
		for start := r.From; start <= r.To; start += step {
			end := start + width - 1
			if end > r.To {
				end = r.To
			}
			windows = append(windows, Range{From: start, To: end})
			if end == r.To {
				break
			}
		}
	}
	return windows
}
