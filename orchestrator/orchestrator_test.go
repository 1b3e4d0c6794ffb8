package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/bebop-rna/intarna-go/accessibility"
	"github.com/bebop-rna/intarna-go/energymodel"
	"github.com/bebop-rna/intarna-go/interaction"
	"github.com/bebop-rna/intarna-go/irange"
	"github.com/bebop-rna/intarna-go/rna"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSeq(t *testing.T, id, raw string) *rna.Sequence {
	t.Helper()
	seq, err := rna.NewSequence(id, raw, 0)
	require.NoError(t, err)
	return seq
}

func stubPredict(calls *int32, windows *[]irange.Range, mu *sync.Mutex) func(*interaction.Energy, irange.Range, irange.Range) ([]*interaction.Interaction, error) {
	return func(_ *interaction.Energy, rt, rq irange.Range) ([]*interaction.Interaction, error) {
		atomic.AddInt32(calls, 1)
		mu.Lock()
		*windows = append(*windows, rt)
		mu.Unlock()
		return []*interaction.Interaction{
			{E: -1.0, BPs: []interaction.BasePair{{I: rt.From, K: rq.From}}},
		}, nil
	}
}

func TestRunAggregatesResultsAcrossPairs(t *testing.T) {
	var calls int32
	var windows []irange.Range
	var mu sync.Mutex

	o := &Orchestrator{
		Targets: []*rna.Sequence{mustSeq(t, "t1", "GGGGCCCC"), mustSeq(t, "t2", "AAAAUUUU")},
		Queries: []*rna.Sequence{mustSeq(t, "q1", "GGGGCCCC")},
		Config: Config{
			Model:   energymodel.NewBasePairModel(),
			Threads: 2,
			Predict: stubPredict(&calls, &windows, &mu),
		},
	}

	results, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.EqualValues(t, 2, calls)
}

func TestRunReusesAccessibilityCacheBySequenceID(t *testing.T) {
	var calls int32
	var windows []irange.Range
	var mu sync.Mutex
	var builds int32

	shared := mustSeq(t, "shared", "GGGGCCCC")
	o := &Orchestrator{
		Targets: []*rna.Sequence{shared, shared},
		Queries: []*rna.Sequence{mustSeq(t, "q1", "GGGGCCCC")},
		Config: Config{
			Model:   energymodel.NewBasePairModel(),
			Threads: 1,
			Predict: stubPredict(&calls, &windows, &mu),
			BuildAccessibility: func(seq *rna.Sequence) (accessibility.Accessibility, error) {
				atomic.AddInt32(&builds, 1)
				return accessibility.NewDisabled(seq), nil
			},
		},
	}

	results, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.EqualValues(t, 2, builds, "the shared target and the query are each built once")
}

func TestRunDecomposesLongSequencesIntoWindows(t *testing.T) {
	var calls int32
	var windows []irange.Range
	var mu sync.Mutex

	long := mustSeq(t, "long", "GGGGCCCCAAAAUUUUGGGGCCCC")
	o := &Orchestrator{
		Targets: []*rna.Sequence{long},
		Queries: []*rna.Sequence{mustSeq(t, "q1", "GGGGCCCC")},
		Config: Config{
			Model:         energymodel.NewBasePairModel(),
			Threads:       1,
			MaxWindowLen:  10,
			WindowOverlap: 2,
			Predict:       stubPredict(&calls, &windows, &mu),
		},
	}

	results, err := o.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Greater(t, len(results[0].Interactions), 1)
	assert.Greater(t, int(calls), 1)
}

func TestRunParallelizesWindowsWhenSelected(t *testing.T) {
	var calls int32
	var windows []irange.Range
	var mu sync.Mutex

	long := mustSeq(t, "long", "GGGGCCCCAAAAUUUUGGGGCCCC")
	o := &Orchestrator{
		Targets: []*rna.Sequence{long},
		Queries: []*rna.Sequence{mustSeq(t, "q1", "GGGGCCCC")},
		Config: Config{
			Model:           energymodel.NewBasePairModel(),
			Threads:         4,
			MaxWindowLen:    10,
			WindowOverlap:   2,
			ParallelizeOver: ParallelizeOverWindows,
			Predict:         stubPredict(&calls, &windows, &mu),
		},
	}

	results, err := o.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Greater(t, int(calls), 1)
}

func TestRunCollectsPartialResultsAlongsideAggregateError(t *testing.T) {
	// Targets differ in length so each one's window range is distinguishable
	// inside Predict, letting the stub fail exactly one of the two tasks.
	failing := mustSeq(t, "bad", "GGGGCCCC")
	ok := mustSeq(t, "good", "AAAAUUUUGGGG")
	query := mustSeq(t, "q1", "GGGGCCCC")

	o := &Orchestrator{
		Targets: []*rna.Sequence{failing, ok},
		Queries: []*rna.Sequence{query},
		Config: Config{
			Model:   energymodel.NewBasePairModel(),
			Threads: 2,
			Predict: func(_ *interaction.Energy, rt, rq irange.Range) ([]*interaction.Interaction, error) {
				if rt.To == failing.Len()-1 {
					return nil, fmt.Errorf("boom")
				}
				return []*interaction.Interaction{{E: -1, BPs: []interaction.BasePair{{I: 0, K: 0}}}}, nil
			},
		},
	}
	results, err := o.Run(context.Background())
	require.Error(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, ok.ID(), results[0].Target.ID())
}

func TestRunRespectsBoundedThreadCount(t *testing.T) {
	var active int32
	var maxActive int32
	var mu sync.Mutex

	targets := make([]*rna.Sequence, 6)
	for i := range targets {
		targets[i] = mustSeq(t, fmt.Sprintf("t%d", i), "GGGGCCCC")
	}

	o := &Orchestrator{
		Targets: targets,
		Queries: []*rna.Sequence{mustSeq(t, "q1", "GGGGCCCC")},
		Config: Config{
			Model:   energymodel.NewBasePairModel(),
			Threads: 2,
			Predict: func(_ *interaction.Energy, rt, rq irange.Range) ([]*interaction.Interaction, error) {
				n := atomic.AddInt32(&active, 1)
				mu.Lock()
				if n > maxActive {
					maxActive = n
				}
				mu.Unlock()
				atomic.AddInt32(&active, -1)
				return []*interaction.Interaction{{E: -1, BPs: []interaction.BasePair{{I: 0, K: 0}}}}, nil
			},
		},
	}

	_, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, int(maxActive), 2)
}

func TestRunRejectsMissingPredict(t *testing.T) {
	o := &Orchestrator{
		Targets: []*rna.Sequence{mustSeq(t, "t1", "GGGGCCCC")},
		Queries: []*rna.Sequence{mustSeq(t, "q1", "GGGGCCCC")},
		Config:  Config{Model: energymodel.NewBasePairModel()},
	}
	_, err := o.Run(context.Background())
	assert.Error(t, err)
}
