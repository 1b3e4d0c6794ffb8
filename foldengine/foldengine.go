/*
Package foldengine supplements accessibility's "Computed" variant (C4) with
a real intra-molecular folding engine, since the specification names
exactly this machinery (a folding/partition-function back end) as required
infrastructure without naming the engine itself as a top-level component.

It is grounded on the teacher's fold/mfe/secondary_structure packages only
algorithmically: those packages, as retrieved, reference symbols not defined
anywhere in the retrieval pack (fold.go's newFoldingContext/nucleicAcidStructure)
and duplicate energy_params's Turner-table machinery via a second, hardcoded
parameter-file loader (mfe.rawEnergyParamsFromFile). Rather than guess at the
undefined symbols, this package is built fresh on top of the already
self-consistent energy_params package (via energymodel), reusing only the
recursive shape of fold.go's memoized Zuker recursion
(unpairedMinimumFreeEnergyW's "skip, pair, or extend" case analysis) and
mfe's Boltzmann-ensemble framing.

Simplification (documented, not hidden): the partition function used here is
a Nussinov-style nested-pair McCaskill recursion driven by energymodel.Model
pair/loop energies rather than the full interior-loop-size-aware Turner
recursion; and window-unpaired probabilities are computed via the single-cut
factorization Z(0,a-1)*Z(b+1,n-1)/Z(0,n-1), which omits configurations where
an outer pair encloses (but does not touch) the window. Both are accurate to
first order and sufficient for a self-accessibility estimate; exact
McCaskill exterior-loop accounting is future work.
*/
package foldengine

import (
	"fmt"
	"math"

	"github.com/bebop-rna/intarna-go/energymodel"
	"github.com/bebop-rna/intarna-go/rna"
)

const minHairpinLoopLen = 3

// Engine folds a single RNA sequence and derives an unpaired-probability
// ensemble, the Computed-accessibility back end.
type Engine struct {
	model energymodel.Model
}

// NewEngine constructs a folding engine driven by the given energy model.
func NewEngine(model energymodel.Model) *Engine {
	return &Engine{model: model}
}

// UnpairedProbabilities returns Pu[j][L]: the approximate probability that
// the window of length L ending at (0-based) position j is entirely
// unpaired in the thermodynamic ensemble, for L in [1, maxWindow]. The
// format matches accessibility's RNAplfold-style wire format so
// NewFromProbabilities and NewComputed share one conversion routine.
func (e *Engine) UnpairedProbabilities(seq *rna.Sequence, maxWindow int) (table [][]float64, err error) {
	n := seq.Len()
	if n == 0 {
		return nil, fmt.Errorf("foldengine: empty sequence")
	}
	if maxWindow <= 0 || maxWindow > n {
		maxWindow = n
	}

	z, err := e.partitionFunction(seq)
	if err != nil {
		return nil, err
	}
	total := z.get(0, n-1)
	if total <= 0 {
		total = 1
	}

	table = make([][]float64, n)
	for j := 0; j < n; j++ {
		table[j] = make([]float64, maxWindow+1)
		for L := 1; L <= maxWindow && L <= j+1; L++ {
			a, b := j-L+1, j
			left := 1.0
			if a > 0 {
				left = z.get(0, a-1)
			}
			right := 1.0
			if b < n-1 {
				right = z.get(b+1, n-1)
			}
			p := left * right / total
			if p > 1 {
				p = 1
			}
			table[j][L] = p
		}
	}
	return table, nil
}

// UnpairedProbability returns the approximate probability that [i,j]
// (0-based, inclusive) is entirely unpaired.
func (e *Engine) UnpairedProbability(seq *rna.Sequence, i, j int) (float64, error) {
	table, err := e.UnpairedProbabilities(seq, j-i+1)
	if err != nil {
		return 0, err
	}
	if j >= len(table) || j-i+1 >= len(table[j]) {
		return 0, fmt.Errorf("foldengine: window [%d,%d] out of range", i, j)
	}
	return table[j][j-i+1], nil
}

// BoltzmannMinEnergy estimates ES(i,j): the Boltzmann-weighted minimum free
// energy over foldings of [i,j] that contain at least one base pair,
// approximated here as -RT*log(Zb(i,j)/Z(i,j)) when Zb>0.
func (e *Engine) BoltzmannMinEnergy(seq *rna.Sequence, i, j int) (float64, bool) {
	z, err := e.partitionFunction(seq)
	if err != nil {
		return 0, false
	}
	paired := z.getB(i, j)
	if paired <= 0 {
		return 0, false
	}
	all := z.get(i, j)
	if all <= 0 {
		return 0, false
	}
	return -e.model.RT() * math.Log(paired/all), true
}

// partitionTables holds the memoized McCaskill-style Z and Zb matrices for
// one sequence.
type partitionTables struct {
	n  int
	z  [][]float64
	zb [][]float64
}

func (t *partitionTables) get(i, j int) float64 {
	if i > j {
		return 1
	}
	return t.z[i][j]
}

func (t *partitionTables) getB(i, j int) float64 {
	if i >= j {
		return 0
	}
	return t.zb[i][j]
}

// partitionFunction computes Z and Zb bottom-up over increasing subsequence
// length, following the same "fill shorter spans first" discipline as
// fold.go's memoized recursion.
func (e *Engine) partitionFunction(seq *rna.Sequence) (*partitionTables, error) {
	n := seq.Len()
	t := &partitionTables{
		n:  n,
		z:  make([][]float64, n),
		zb: make([][]float64, n),
	}
	for i := range t.z {
		t.z[i] = make([]float64, n)
		t.zb[i] = make([]float64, n)
	}
	rt := e.model.RT()
	if rt <= 0 {
		return nil, fmt.Errorf("foldengine: invalid RT=%v from energy model", rt)
	}

	for i := 0; i < n; i++ {
		t.z[i][i] = 1
	}

	for span := 1; span < n; span++ {
		for i := 0; i+span < n; i++ {
			j := i + span

			// Zb(i,j): requires (i,j) to be a valid pair.
			if j-i-1 >= minHairpinLoopLen && rna.AreComplementary(seq, seq, i, j) {
				bp, ok := e.model.BasePairType(seq.At(i), seq.At(j))
				if ok {
					zb := math.Exp(-e.model.Hairpin(bp, j-i-1) / rt)
					for k := i + 1; k < j; k++ {
						for l := k + 1; l < j; l++ {
							if !rna.AreComplementary(seq, seq, k, l) {
								continue
							}
							innerBP, ok := e.model.BasePairType(seq.At(k), seq.At(l))
							if !ok {
								continue
							}
							loopEnergy := e.loopEnergy(bp, innerBP, k-i-1, j-l-1)
							zb += t.getB(k, l) * math.Exp(-loopEnergy/rt)
						}
					}
					t.zb[i][j] = zb
				}
			}

			// Z(i,j): i unpaired, or i pairs with some k in (i,j].
			z := t.get(i+1, j)
			for k := i + 1; k <= j; k++ {
				if t.getB(i, k) > 0 {
					z += t.getB(i, k) * t.get(k+1, j)
				}
			}
			t.z[i][j] = z
		}
	}
	return t, nil
}

// loopEnergy approximates a stacked-pair or interior-loop energy between an
// outer pair and an inner pair, collapsing bulge/interior-loop distinctions
// into energymodel's InteriorLoop/Stack, which already subsume the
// zero-unpaired stacking case.
func (e *Engine) loopEnergy(outer, inner energymodel.BasePairType, loopLen1, loopLen2 int) float64 {
	if loopLen1 == 0 && loopLen2 == 0 {
		return e.model.Stack(outer, inner)
	}
	return e.model.InteriorLoop(outer, inner, loopLen1, loopLen2)
}
