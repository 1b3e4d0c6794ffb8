/*
Package accessibility implements the ED/ES accessibility plug-in (C4) and
its index-reversal decorator (C5).

UpperBoundKcal stands in for the logical +Infinity the way the teacher's mfe
package uses a large finite INF sentinel (10000000) rather than a true
floating-point infinity, keeping every DP sum well-defined instead of
propagating NaN.
*/
package accessibility

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/bebop-rna/intarna-go/constraint"
	"github.com/bebop-rna/intarna-go/foldengine"
	"github.com/bebop-rna/intarna-go/irange"
	"github.com/bebop-rna/intarna-go/rna"
)

// UpperBound is the logical +Infinity for an unreachable/blocked accessibility.
var UpperBound = math.Inf(1)

// UpperBoundKcal is the finite sentinel substituted for UpperBound inside
// DP tensors, so that summing accessibility penalties never produces NaN.
const UpperBoundKcal = 1e6

// Accessibility is the plug-in interface every predictor consumes instead
// of a concrete accessibility representation.
type Accessibility interface {
	Length() int
	Window() int
	GetED(i, j int) float64
	GetES(i, j int) (float64, bool)
	Sequence() *rna.Sequence
}

// Disabled returns 0 for every position: no accessibility penalty applied.
type Disabled struct {
	seq *rna.Sequence
}

func NewDisabled(seq *rna.Sequence) *Disabled { return &Disabled{seq: seq} }

func (d *Disabled) Length() int                    { return d.seq.Len() }
func (d *Disabled) Window() int                     { return d.seq.Len() }
func (d *Disabled) GetED(i, j int) float64          { return 0 }
func (d *Disabled) GetES(i, j int) (float64, bool)  { return 0, false }
func (d *Disabled) Sequence() *rna.Sequence         { return d.seq }

// BasePair is the simple C4 model: ED is 0 unless the region is blocked by
// a constraint, in which case it is UpperBoundKcal.
type BasePair struct {
	seq    *rna.Sequence
	constr *constraint.Constraint
}

func NewBasePair(seq *rna.Sequence, constr *constraint.Constraint) *BasePair {
	return &BasePair{seq: seq, constr: constr}
}

func (b *BasePair) Length() int { return b.seq.Len() }
func (b *BasePair) Window() int { return b.seq.Len() }
func (b *BasePair) GetED(i, j int) float64 {
	if b.constr != nil && b.constr.BlockedIn(i, j) {
		return UpperBoundKcal
	}
	return 0
}
func (b *BasePair) GetES(i, j int) (float64, bool) { return 0, false }
func (b *BasePair) Sequence() *rna.Sequence        { return b.seq }

// FromProbabilities is the RNAplfold-stream-backed C4 variant: ED(i,j) is
// derived from a precomputed Pu[j][L] unpaired-probability table via
// -RT*log(Pu).
type FromProbabilities struct {
	seq    *rna.Sequence
	pu     [][]float64 // Pu[j][L]
	window int
	rt     float64
	constr *constraint.Constraint
}

// NewFromProbabilities builds an accessibility from a precomputed Pu table,
// RT (kcal/mol), and an optional constraint.
func NewFromProbabilities(seq *rna.Sequence, pu [][]float64, window int, rt float64, constr *constraint.Constraint) *FromProbabilities {
	return &FromProbabilities{seq: seq, pu: pu, window: window, rt: rt, constr: constr}
}

// LoadProbabilitiesFile parses the RNAplfold-style "# pos window Pu" wire
// format (§6) into the Pu[j][L] table this constructor expects.
func LoadProbabilitiesFile(path string, n int) (table [][]float64, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("accessibility: opening %s: %w", path, err)
	}
	defer file.Close()

	table = make([][]float64, n)
	for i := range table {
		table[i] = make([]float64, n+1)
	}
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("accessibility: %s:%d: expected 3 columns \"pos window Pu\", got %d", path, lineNum, len(fields))
		}
		pos1, err1 := strconv.Atoi(fields[0])
		window, err2 := strconv.Atoi(fields[1])
		pu, err3 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("accessibility: %s:%d: malformed row %q", path, lineNum, line)
		}
		j := pos1 - 1
		if j < 0 || j >= n || window < 1 || window >= len(table[j]) {
			return nil, fmt.Errorf("accessibility: %s:%d: position/window out of bounds", path, lineNum)
		}
		table[j][window] = pu
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("accessibility: reading %s: %w", path, err)
	}
	return table, nil
}

func (f *FromProbabilities) Length() int { return f.seq.Len() }
func (f *FromProbabilities) Window() int { return f.window }

func (f *FromProbabilities) GetED(i, j int) float64 {
	if f.constr != nil && f.constr.BlockedIn(i, j) {
		return UpperBoundKcal
	}
	L := j - i + 1
	if j >= len(f.pu) || L >= len(f.pu[j]) || L < 1 {
		return UpperBoundKcal
	}
	pu := f.pu[j][L]
	if pu <= 0 {
		return UpperBoundKcal
	}
	return -f.rt * math.Log(pu)
}

func (f *FromProbabilities) GetES(i, j int) (float64, bool) { return 0, false }
func (f *FromProbabilities) Sequence() *rna.Sequence        { return f.seq }

// Computed delegates to foldengine to make NewComputed real rather than a
// stub, sharing FromProbabilities's -RT*log(Pu) conversion so the two
// variants agree within numerical tolerance, as required.
type Computed struct {
	*FromProbabilities
	engine *foldengine.Engine
}

// NewComputed folds seq with engine and derives a Pu table internally,
// reusing the FromProbabilities conversion routine.
func NewComputed(seq *rna.Sequence, engine *foldengine.Engine, window int, rt float64, constr *constraint.Constraint) (*Computed, error) {
	pu, err := engine.UnpairedProbabilities(seq, window)
	if err != nil {
		return nil, fmt.Errorf("accessibility: computing unpaired probabilities: %w", err)
	}
	return &Computed{
		FromProbabilities: NewFromProbabilities(seq, pu, window, rt, constr),
		engine:            engine,
	}, nil
}

// GetES overrides FromProbabilities.GetES: Computed is the one variant that
// can estimate ES via the folding ensemble.
func (c *Computed) GetES(i, j int) (float64, bool) {
	return c.engine.BoltzmannMinEnergy(c.Sequence(), i, j)
}

// DecomposeByMaxED splits [0, acc.Length()-1] into windows of width maxLen
// that overlap by minRegionLen positions (irange.List.Windows), and returns
// the full range unchanged when maxLen <= 0 or maxLen >= acc.Length(). The
// split depends on lengths only: ED values are not read and windowLen is
// not used.
func DecomposeByMaxED(acc Accessibility, maxLen, windowLen, minRegionLen int) irange.List {
	n := acc.Length()
	full := irange.List{{From: 0, To: n - 1}}
	if maxLen <= 0 || maxLen >= n {
		return full
	}
	return full.Windows(maxLen, minRegionLen)
}

// ReverseAccessibility (C5) wraps an Accessibility to expose it in
// 3'->5' index order, used when a predictor needs to treat the target as
// though it were read in reverse without duplicating the DP logic.
type ReverseAccessibility struct {
	inner Accessibility
}

// NewReverse wraps acc with reversed indexing.
func NewReverse(acc Accessibility) *ReverseAccessibility {
	return &ReverseAccessibility{inner: acc}
}

// GetReversedIndex maps a forward 0-based index to its reverse-order index.
func (r *ReverseAccessibility) GetReversedIndex(i int) int {
	return r.inner.Length() - 1 - i
}

func (r *ReverseAccessibility) Length() int { return r.inner.Length() }
func (r *ReverseAccessibility) Window() int { return r.inner.Window() }
func (r *ReverseAccessibility) GetED(i, j int) float64 {
	ri, rj := r.GetReversedIndex(j), r.GetReversedIndex(i)
	return r.inner.GetED(ri, rj)
}
func (r *ReverseAccessibility) GetES(i, j int) (float64, bool) {
	ri, rj := r.GetReversedIndex(j), r.GetReversedIndex(i)
	return r.inner.GetES(ri, rj)
}
func (r *ReverseAccessibility) Sequence() *rna.Sequence { return r.inner.Sequence() }
