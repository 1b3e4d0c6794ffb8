/*
Package tracker implements the prediction-tracking hub (C14): a set of
optional observers that accumulate statistics over every candidate
interaction a predictor's DP recursion considers, without the hot DP loop
needing to know which (if any) trackers are active.
*/
package tracker

import (
	"math"
	"sync"
)

// Tracker observes every DP cell a predictor visits. isHybridE distinguishes
// a pure hybridization-energy update (no accessibility terms yet applied)
// from a final total-energy update; updateZ marks a call that should also
// contribute to a Boltzmann partition-function accumulation.
type Tracker interface {
	Update(i1, j1, i2, j2 int, e float64, isHybridE, updateZ bool)
	Finalize() error
}

// Hub fans a single Update/Finalize call out to zero or more registered
// Trackers, gated by a single Enabled() check so the hot DP path never pays
// for dynamic dispatch when no tracker is registered (spec.md §9).
type Hub struct {
	trackers []Tracker
}

// NewHub constructs an empty Hub; Register adds trackers to it.
func NewHub() *Hub { return &Hub{} }

// Register adds t to the hub's fan-out list.
func (h *Hub) Register(t Tracker) { h.trackers = append(h.trackers, t) }

// Enabled reports whether any tracker is registered.
func (h *Hub) Enabled() bool { return len(h.trackers) > 0 }

// Update fans out to every registered tracker. Callers should guard this
// behind Enabled() on the hot path to avoid the (here cheap, but
// nonzero) slice iteration when no tracker is registered.
func (h *Hub) Update(i1, j1, i2, j2 int, e float64, isHybridE, updateZ bool) {
	for _, t := range h.trackers {
		t.Update(i1, j1, i2, j2, e, isHybridE, updateZ)
	}
}

// Finalize calls Finalize on every registered tracker, collecting the
// first error encountered while still calling the rest.
func (h *Hub) Finalize() error {
	var firstErr error
	for _, t := range h.trackers {
		if err := t.Finalize(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ProfileMinE tracks, for every target position i1, the minimum energy of
// any interaction that uses it — an accessibility-style energy profile.
type ProfileMinE struct {
	mu      sync.Mutex
	profile map[int]float64
}

// NewProfileMinE constructs an empty per-position minimum-energy profile.
func NewProfileMinE() *ProfileMinE { return &ProfileMinE{profile: map[int]float64{}} }

func (p *ProfileMinE) Update(i1, j1, i2, j2 int, e float64, isHybridE, updateZ bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := i1; i <= j1; i++ {
		if cur, ok := p.profile[i]; !ok || e < cur {
			p.profile[i] = e
		}
	}
}

func (p *ProfileMinE) Finalize() error { return nil }

// Profile returns a snapshot of the accumulated per-position minimum energy.
func (p *ProfileMinE) Profile() map[int]float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[int]float64, len(p.profile))
	for k, v := range p.profile {
		out[k] = v
	}
	return out
}

// pairKey identifies one (i1,i2) start position.
type pairKey struct{ i1, i2 int }

// PairMinE tracks the minimum energy seen for every distinct (i1,i2) start.
type PairMinE struct {
	mu    sync.Mutex
	byPos map[pairKey]float64
}

// NewPairMinE constructs an empty per-pair minimum-energy tracker.
func NewPairMinE() *PairMinE { return &PairMinE{byPos: map[pairKey]float64{}} }

func (p *PairMinE) Update(i1, j1, i2, j2 int, e float64, isHybridE, updateZ bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := pairKey{i1, i2}
	if cur, ok := p.byPos[key]; !ok || e < cur {
		p.byPos[key] = e
	}
}

func (p *PairMinE) Finalize() error { return nil }

// MinE returns the minimum energy recorded at start (i1,i2), or (0,false)
// if none was ever recorded.
func (p *PairMinE) MinE(i1, i2 int) (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.byPos[pairKey{i1, i2}]
	return v, ok
}

// SpotProb accumulates a Boltzmann partition-function sum for a single
// (i1,i2) "spot" of interest, giving that position's interaction
// probability relative to the window's total ensemble (set via SetZall).
type SpotProb struct {
	mu     sync.Mutex
	i1, i2 int
	rt     float64
	z      float64
	zAll   float64
}

// NewSpotProb constructs a tracker that only accumulates Z for the given
// (i1,i2) position, at the given RT (kcal/mol).
func NewSpotProb(i1, i2 int, rt float64) *SpotProb {
	return &SpotProb{i1: i1, i2: i2, rt: rt}
}

func (s *SpotProb) Update(i1, j1, i2, j2 int, e float64, isHybridE, updateZ bool) {
	if !updateZ || i1 > s.i1 || s.i1 > j1 || i2 > s.i2 || s.i2 > j2 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.z += boltzmann(e, s.rt)
}

func (s *SpotProb) Finalize() error { return nil }

// SetZall fixes the window's total partition function, computed once the
// full DP table has been filled.
func (s *SpotProb) SetZall(zAll float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zAll = zAll
}

// Probability returns Z(spot)/Zall, or 0 if Zall hasn't been set.
func (s *SpotProb) Probability() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.zAll == 0 {
		return 0
	}
	return s.z / s.zAll
}

// ProfileSpotProb is ProfileMinE's ensemble-probability analog: for every
// target position it accumulates a partition-function sum instead of a
// minimum, so Probability(i1) reports that position's marginal interaction
// probability once Zall is set.
type ProfileSpotProb struct {
	mu   sync.Mutex
	rt   float64
	z    map[int]float64
	zAll float64
}

// NewProfileSpotProb constructs an empty per-position ensemble tracker at
// the given RT.
func NewProfileSpotProb(rt float64) *ProfileSpotProb {
	return &ProfileSpotProb{rt: rt, z: map[int]float64{}}
}

func (p *ProfileSpotProb) Update(i1, j1, i2, j2 int, e float64, isHybridE, updateZ bool) {
	if !updateZ {
		return
	}
	w := boltzmann(e, p.rt)
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := i1; i <= j1; i++ {
		p.z[i] += w
	}
}

func (p *ProfileSpotProb) Finalize() error { return nil }

// SetZall fixes the window's total partition function.
func (p *ProfileSpotProb) SetZall(zAll float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.zAll = zAll
}

// Probability returns position i1's marginal interaction probability.
func (p *ProfileSpotProb) Probability(i1 int) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.zAll == 0 {
		return 0
	}
	return p.z[i1] / p.zAll
}

// SpotProbAll accumulates a full (i1,i2) partition-function map, giving
// every position pair's joint interaction probability once Zall is set —
// the least memory-efficient tracker, used only when the caller explicitly
// wants a complete probability matrix rather than a profile or single spot.
type SpotProbAll struct {
	mu   sync.Mutex
	rt   float64
	z    map[pairKey]float64
	zAll float64
}

// NewSpotProbAll constructs an empty full-matrix ensemble tracker at the
// given RT.
func NewSpotProbAll(rt float64) *SpotProbAll {
	return &SpotProbAll{rt: rt, z: map[pairKey]float64{}}
}

func (s *SpotProbAll) Update(i1, j1, i2, j2 int, e float64, isHybridE, updateZ bool) {
	if !updateZ {
		return
	}
	w := boltzmann(e, s.rt)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.z[pairKey{i1, i2}] += w
}

func (s *SpotProbAll) Finalize() error { return nil }

// SetZall fixes the window's total partition function.
func (s *SpotProbAll) SetZall(zAll float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zAll = zAll
}

// Probability returns (i1,i2)'s joint interaction probability.
func (s *SpotProbAll) Probability(i1, i2 int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.zAll == 0 {
		return 0
	}
	return s.z[pairKey{i1, i2}] / s.zAll
}

func boltzmann(e, rt float64) float64 {
	if rt == 0 {
		return 0
	}
	return math.Exp(-e / rt)
}
