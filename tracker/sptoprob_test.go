package tracker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpotProbComputesRelativeProbability(t *testing.T) {
	s := NewSpotProb(1, 1, 1.0)
	s.Update(0, 2, 0, 2, 0.0, false, true)
	s.Update(5, 6, 5, 6, 0.0, false, true)
	s.SetZall(4.0)
	assert.InDelta(t, 1.0/4.0, s.Probability(), 1e-9)
}

func TestSpotProbIgnoresUpdatesOutsideSpot(t *testing.T) {
	s := NewSpotProb(10, 10, 1.0)
	s.Update(0, 2, 0, 2, 0.0, false, true)
	s.SetZall(1.0)
	assert.Equal(t, 0.0, s.Probability())
}

func TestSpotProbIgnoresNonZUpdates(t *testing.T) {
	s := NewSpotProb(1, 1, 1.0)
	s.Update(0, 2, 0, 2, 0.0, false, false)
	s.SetZall(1.0)
	assert.Equal(t, 0.0, s.Probability())
}

func TestProfileSpotProbAccumulatesPerPosition(t *testing.T) {
	p := NewProfileSpotProb(1.0)
	p.Update(0, 3, 0, 3, 0.0, false, true)
	p.SetZall(1.0)
	assert.Greater(t, p.Probability(2), 0.0)
	assert.Equal(t, 0.0, p.Probability(10))
}

func TestSpotProbAllTracksJointProbability(t *testing.T) {
	s := NewSpotProbAll(1.0)
	s.Update(3, 3, 4, 4, 0.0, false, true)
	s.SetZall(1.0)
	assert.Greater(t, s.Probability(3, 4), 0.0)
	assert.Equal(t, 0.0, s.Probability(0, 0))
}

func TestProfileMinETracksPerPositionMinimum(t *testing.T) {
	p := NewProfileMinE()
	p.Update(0, 3, 0, 0, -1.0, true, false)
	p.Update(2, 5, 0, 0, -5.0, true, false)
	profile := p.Profile()
	assert.Equal(t, -5.0, profile[3])
	assert.Equal(t, -1.0, profile[0])
}

func TestPairMinETracksPerStartMinimum(t *testing.T) {
	p := NewPairMinE()
	p.Update(1, 1, 2, 2, -1.0, true, false)
	p.Update(1, 1, 2, 2, -3.0, true, false)
	v, ok := p.MinE(1, 2)
	assert.True(t, ok)
	assert.Equal(t, -3.0, v)

	_, ok = p.MinE(9, 9)
	assert.False(t, ok)
}

func TestHubFansOutAndRespectsEnabled(t *testing.T) {
	h := NewHub()
	assert.False(t, h.Enabled())
	p1, p2 := NewPairMinE(), NewPairMinE()
	h.Register(p1)
	h.Register(p2)
	assert.True(t, h.Enabled())
	h.Update(0, 0, 0, 0, -2.0, true, false)
	v1, _ := p1.MinE(0, 0)
	v2, _ := p2.MinE(0, 0)
	assert.Equal(t, v1, v2)
}

func TestHubFinalizeCollectsFirstError(t *testing.T) {
	h := NewHub()
	h.Register(NewPairMinE())
	assert.NoError(t, h.Finalize())
}

func TestTrackersAreSafeForConcurrentUpdate(t *testing.T) {
	p := NewPairMinE()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p.Update(0, 0, 0, 0, float64(-i), true, false)
		}(i)
	}
	wg.Wait()
	v, ok := p.MinE(0, 0)
	assert.True(t, ok)
	assert.LessOrEqual(t, v, 0.0)
}
