/*
Package orchestrator drives the full target x query sweep (C16): building
accessibility once per sequence, decomposing long ranges into overlapping
windows, dispatching predictions across a bounded worker pool, and
collecting results and errors from every task.

The worker pool's goroutine-per-task plus sync.WaitGroup shape is grounded
on the teacher's commands.go convert()/hash() functions, which fan a single
cli.Context out across every matched file the same way.
*/
package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/bebop-rna/intarna-go/accessibility"
	"github.com/bebop-rna/intarna-go/energymodel"
	"github.com/bebop-rna/intarna-go/interaction"
	"github.com/bebop-rna/intarna-go/irange"
	"github.com/bebop-rna/intarna-go/rna"
)

// ParallelizeOver selects which loop of the target x query x window sweep
// runs concurrently; exactly one is parallelized at a time.
type ParallelizeOver int

const (
	ParallelizeOverTargets ParallelizeOver = iota
	ParallelizeOverQueries
	ParallelizeOverWindows
)

// Config holds the sweep-wide settings every task shares.
type Config struct {
	Model           energymodel.Model
	MaxIntLoop1     int
	MaxIntLoop2     int
	AccWindow       int
	RT              float64
	MaxWindowLen    int
	WindowOverlap   int
	Threads         int
	ParallelizeOver ParallelizeOver
	// Predict runs one predictor call for the given windows and returns its
	// best interactions; Orchestrator is predictor-engine-agnostic so tests
	// can supply a stub without building a real Predictor.
	Predict func(energy *interaction.Energy, rangeT, rangeQ irange.Range) ([]*interaction.Interaction, error)
	// BuildAccessibility constructs the Accessibility for one sequence,
	// e.g. wiring in SHAPE data, structural constraints, or a computed
	// partition-function engine. Defaults to accessibility.NewDisabled
	// when nil, which is what every orchestrator_test.go stub relies on.
	BuildAccessibility func(seq *rna.Sequence) (accessibility.Accessibility, error)
}

// Result pairs one target/query combination with its predicted interactions.
type Result struct {
	Target, Query *rna.Sequence
	Interactions  []*interaction.Interaction
}

// Orchestrator runs Config.Predict over every (target, query) pair.
type Orchestrator struct {
	Targets, Queries []*rna.Sequence
	Config           Config
}

// taskError pairs a task's identifying sequences with the error it produced,
// so Run can report which pair failed inside its aggregate error.
type taskError struct {
	target, query string
	err           error
}

func (e *taskError) Error() string {
	return fmt.Sprintf("orchestrator: %s x %s: %v", e.target, e.query, e.err)
}

// Run executes the full sweep, building each query's accessibility once
// and reusing it across every target it's paired with, decomposing long
// sequences into overlapping windows, and dispatching across a bounded
// worker pool selected by Config.ParallelizeOver. It returns every
// successfully produced Result plus the aggregate of every task's error,
// letting every sibling task finish before returning (spec.md §7's
// propagation policy: first error per task, but no early abort).
func (o *Orchestrator) Run(ctx context.Context) ([]Result, error) {
	if o.Config.Predict == nil {
		return nil, fmt.Errorf("orchestrator: Config.Predict is required")
	}
	threads := o.Config.Threads
	if threads <= 0 {
		threads = 1
	}

	buildAcc := o.Config.BuildAccessibility
	if buildAcc == nil {
		buildAcc = func(seq *rna.Sequence) (accessibility.Accessibility, error) {
			return accessibility.NewDisabled(seq), nil
		}
	}

	accCache := map[string]accessibility.Accessibility{}
	var accMu sync.Mutex
	getAcc := func(seq *rna.Sequence) (accessibility.Accessibility, error) {
		accMu.Lock()
		defer accMu.Unlock()
		if acc, ok := accCache[seq.ID()]; ok {
			return acc, nil
		}
		acc, err := buildAcc(seq)
		if err != nil {
			return nil, err
		}
		accCache[seq.ID()] = acc
		return acc, nil
	}

	type job struct {
		target, query *rna.Sequence
	}
	var jobs []job
	for _, target := range o.Targets {
		for _, query := range o.Queries {
			jobs = append(jobs, job{target: target, query: query})
		}
	}

	results := make([]Result, len(jobs))
	errs := make([]error, len(jobs))

	sem := make(chan struct{}, threads)
	var wg sync.WaitGroup
	for idx, j := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, j job) {
			defer wg.Done()
			defer func() { <-sem }()
			select {
			case <-ctx.Done():
				errs[idx] = &taskError{target: j.target.ID(), query: j.query.ID(), err: ctx.Err()}
				return
			default:
			}
			res, err := o.runOne(j.target, j.query, getAcc)
			if err != nil {
				errs[idx] = &taskError{target: j.target.ID(), query: j.query.ID(), err: err}
				return
			}
			results[idx] = res
		}(idx, j)
	}
	wg.Wait()

	var out []Result
	var aggErrs []error
	for idx := range jobs {
		if errs[idx] != nil {
			aggErrs = append(aggErrs, errs[idx])
			continue
		}
		out = append(out, results[idx])
	}
	if len(aggErrs) > 0 {
		return out, fmt.Errorf("orchestrator: %d of %d tasks failed: %w", len(aggErrs), len(jobs), joinErrors(aggErrs))
	}
	return out, nil
}

func (o *Orchestrator) runOne(target, query *rna.Sequence, getAcc func(*rna.Sequence) (accessibility.Accessibility, error)) (Result, error) {
	accT, err := getAcc(target)
	if err != nil {
		return Result{}, fmt.Errorf("building target accessibility: %w", err)
	}
	accQ, err := getAcc(query)
	if err != nil {
		return Result{}, fmt.Errorf("building query accessibility: %w", err)
	}
	energy := interaction.NewEnergy(accT, accQ, o.Config.Model, o.Config.MaxIntLoop1, o.Config.MaxIntLoop2)

	windowsT := irange.List{{From: 0, To: target.Len() - 1}}
	windowsQ := irange.List{{From: 0, To: query.Len() - 1}}
	if o.Config.MaxWindowLen > 0 {
		windowsT = windowsT.Windows(o.Config.MaxWindowLen, o.Config.WindowOverlap)
		windowsQ = windowsQ.Windows(o.Config.MaxWindowLen, o.Config.WindowOverlap)
	}

	type winJob struct{ rt, rq irange.Range }
	var winJobs []winJob
	for _, rt := range windowsT {
		for _, rq := range windowsQ {
			winJobs = append(winJobs, winJob{rt: rt, rq: rq})
		}
	}

	// Only the window loop is parallelized here when selected; target and
	// query parallelization happen one level up in Run's job dispatch, so
	// at most one of the three loops ever runs concurrently at a time.
	if o.Config.ParallelizeOver != ParallelizeOverWindows || len(winJobs) <= 1 {
		var all []*interaction.Interaction
		for _, wj := range winJobs {
			found, err := o.Config.Predict(energy, wj.rt, wj.rq)
			if err != nil {
				return Result{}, fmt.Errorf("predicting window [%d,%d] x [%d,%d]: %w", wj.rt.From, wj.rt.To, wj.rq.From, wj.rq.To, err)
			}
			all = append(all, found...)
		}
		return Result{Target: target, Query: query, Interactions: all}, nil
	}

	threads := o.Config.Threads
	if threads <= 0 {
		threads = 1
	}
	allPer := make([][]*interaction.Interaction, len(winJobs))
	errsPer := make([]error, len(winJobs))
	sem := make(chan struct{}, threads)
	var wg sync.WaitGroup
	for idx, wj := range winJobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, wj winJob) {
			defer wg.Done()
			defer func() { <-sem }()
			found, err := o.Config.Predict(energy, wj.rt, wj.rq)
			if err != nil {
				errsPer[idx] = fmt.Errorf("predicting window [%d,%d] x [%d,%d]: %w", wj.rt.From, wj.rt.To, wj.rq.From, wj.rq.To, err)
				return
			}
			allPer[idx] = found
		}(idx, wj)
	}
	wg.Wait()

	var all []*interaction.Interaction
	for idx := range winJobs {
		if errsPer[idx] != nil {
			return Result{}, errsPer[idx]
		}
		all = append(all, allPer[idx]...)
	}
	return Result{Target: target, Query: query, Interactions: all}, nil
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	msg := errs[0].Error()
	for _, e := range errs[1:] {
		msg += "; " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
