/*
Package constraint parses and stores per-position accessibility constraints
("." free, "x" unpaired-only, "p" intra-molecularly paired, "b" blocked) plus
an optional SHAPE-derived pseudo-energy vector.

Wire format grounded on original_source/src/CommandLineParsing.cpp's
constraint-string handling: both the per-position-character string form and
the compact "b:3-4,33-40,p:1-2,12-20" range form are accepted, expressed in
strings + strconv parsing.
*/
package constraint

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the accessibility-constraint state of a single position.
type Kind byte

const (
	Free        Kind = '.'
	Unpaired    Kind = 'x'
	PairedIntra Kind = 'p'
	Blocked     Kind = 'b'
)

func kindFromByte(b byte) (Kind, bool) {
	switch Kind(b) {
	case Free, Unpaired, PairedIntra, Blocked:
		return Kind(b), true
	default:
		return 0, false
	}
}

// Constraint holds the per-position kind and an optional SHAPE pseudo-energy
// vector of the same length.
type Constraint struct {
	kinds []Kind
	shape []float64
}

// ParseConstraint accepts either a per-position string of length n made of
// '.', 'x', 'p', 'b', or a range form like "b:3-4,33-40,p:1-2,12-20" (1-based,
// inclusive, unlisted positions default to Free).
func ParseConstraint(s string, n int) (*Constraint, error) {
	c := &Constraint{kinds: make([]Kind, n)}
	for i := range c.kinds {
		c.kinds[i] = Free
	}
	if strings.TrimSpace(s) == "" {
		return c, nil
	}
	if looksLikeRangeForm(s) {
		if err := c.parseRangeForm(s, n); err != nil {
			return nil, err
		}
		return c, nil
	}
	if len(s) != n {
		return nil, fmt.Errorf("constraint: per-position string has length %d, expected %d", len(s), n)
	}
	for i := 0; i < n; i++ {
		kind, ok := kindFromByte(s[i])
		if !ok {
			return nil, fmt.Errorf("constraint: position %d: unknown constraint character %q", i, s[i])
		}
		c.kinds[i] = kind
	}
	return c, nil
}

func looksLikeRangeForm(s string) bool {
	for _, prefix := range []string{"b:", "p:", "x:"} {
		if strings.Contains(s, prefix) {
			return true
		}
	}
	return false
}

func (c *Constraint) parseRangeForm(s string, n int) error {
	var current Kind = Blocked
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ":"); idx != -1 {
			kind, ok := kindFromByte(token[0])
			if !ok {
				return fmt.Errorf("constraint: unknown range-form kind %q", token[:idx])
			}
			current = kind
			token = token[idx+1:]
		}
		bounds := strings.SplitN(token, "-", 2)
		if len(bounds) != 2 {
			return fmt.Errorf("constraint: malformed range %q", token)
		}
		from1, err := strconv.Atoi(bounds[0])
		if err != nil {
			return fmt.Errorf("constraint: invalid start in %q: %w", token, err)
		}
		to1, err := strconv.Atoi(bounds[1])
		if err != nil {
			return fmt.Errorf("constraint: invalid end in %q: %w", token, err)
		}
		from, to := from1-1, to1-1
		if from < 0 || to < from || to >= n {
			return fmt.Errorf("constraint: range %q out of bounds for length %d", token, n)
		}
		for i := from; i <= to; i++ {
			c.kinds[i] = current
		}
	}
	return nil
}

// IsBlocked reports whether position i is Blocked.
func (c *Constraint) IsBlocked(i int) bool {
	return c.kinds[i] == Blocked
}

// BlockedIn reports whether any position in [i,j] is Blocked.
func (c *Constraint) BlockedIn(i, j int) bool {
	for k := i; k <= j; k++ {
		if c.kinds[k] == Blocked {
			return true
		}
	}
	return false
}

// Kind returns the constraint kind at position i.
func (c *Constraint) Kind(i int) Kind {
	return c.kinds[i]
}

// Len returns the number of positions covered.
func (c *Constraint) Len() int {
	return len(c.kinds)
}

// AttachShape stores a precomputed SHAPE pseudo-energy vector (produced by
// package shape) alongside the constraint. constraint only stores the
// vector; conversion from raw reactivity lives entirely in shape.
func (c *Constraint) AttachShape(pseudoEnergy []float64) error {
	if len(pseudoEnergy) != len(c.kinds) {
		return fmt.Errorf("constraint: SHAPE vector has length %d, expected %d", len(pseudoEnergy), len(c.kinds))
	}
	c.shape = pseudoEnergy
	return nil
}

// ShapeEnergy returns the SHAPE pseudo-energy at position i, or 0 if none
// was attached.
func (c *Constraint) ShapeEnergy(i int) float64 {
	if c.shape == nil {
		return 0
	}
	return c.shape[i]
}
