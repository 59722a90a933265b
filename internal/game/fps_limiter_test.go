package game

import (
	"testing"
	"time"

	"scenery/internal/config"

	"github.com/stretchr/testify/assert"
)

func fixedLimit(n int) func() int { return func() int { return n } }

func TestLimiterTarget(t *testing.T) {
	f := &FPSLimiter{limit: fixedLimit(50)}
	assert.Equal(t, 20*time.Millisecond, f.Target(false))
	assert.Equal(t, time.Second/IdleFPSLimit, f.Target(true))

	f.limit = fixedLimit(10)
	assert.Equal(t, 100*time.Millisecond, f.Target(true), "idle never raises a lower cap")

	f.limit = fixedLimit(0)
	assert.Zero(t, f.Target(false))
	assert.Equal(t, time.Second/IdleFPSLimit, f.Target(true))
}

func TestLimiterDisabledDoesNotBlock(t *testing.T) {
	f := &FPSLimiter{limit: fixedLimit(0)}
	start := time.Now()
	for range 100 {
		f.Wait(false)
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
	assert.True(t, f.next.IsZero())
}

func TestLimiterPacesFrames(t *testing.T) {
	f := &FPSLimiter{limit: fixedLimit(200)}
	start := time.Now()
	for range 10 {
		f.Wait(false)
	}
	// ten 5ms frames
	assert.GreaterOrEqual(t, time.Since(start), 45*time.Millisecond)
}

func TestLimiterResyncsAfterHitch(t *testing.T) {
	f := &FPSLimiter{limit: fixedLimit(200)}
	f.Wait(false)
	time.Sleep(30 * time.Millisecond)
	f.Wait(false)

	// after a hitch the next deadline is one frame out, not in the past
	assert.Greater(t, time.Until(f.next), time.Duration(0))
}

func TestLimiterFollowsConfig(t *testing.T) {
	prev := config.GetFPSLimit()
	t.Cleanup(func() { config.SetFPSLimit(prev) })

	f := NewFPSLimiter()
	config.SetFPSLimit(25)
	assert.Equal(t, 40*time.Millisecond, f.Target(false))
}
