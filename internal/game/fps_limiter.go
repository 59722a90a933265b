package game

import (
	"time"

	"scenery/internal/config"
)

// IdleFPSLimit caps the frame rate while the window is unfocused.
const IdleFPSLimit = 30

// spinWindow is how long before the deadline sleeping stops and spinning starts.
const spinWindow = 200 * time.Microsecond

// FPSLimiter provides high-precision frame rate limiting
type FPSLimiter struct {
	next  time.Time
	limit func() int
}

// NewFPSLimiter creates a limiter that follows the live config FPS limit.
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{limit: config.GetFPSLimit}
}

// Target returns the frame period for the current limit, or 0 when
// limiting is disabled.
func (f *FPSLimiter) Target(idle bool) time.Duration {
	limit := f.limit()
	if idle && (limit <= 0 || limit > IdleFPSLimit) {
		limit = IdleFPSLimit
	}
	if limit <= 0 {
		return 0
	}
	return time.Second / time.Duration(limit)
}

// Wait blocks until the next frame should be rendered based on the FPS limit.
// Uses a hybrid sleep/spin approach for better precision on high FPS caps.
func (f *FPSLimiter) Wait(idle bool) {
	target := f.Target(idle)
	if target == 0 {
		f.next = time.Time{}
		return
	}

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
		// busy-wait for the final few microseconds
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// If we're significantly late (e.g., hitch), resync to avoid drift
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
