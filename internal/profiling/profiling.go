// Package profiling is a lightweight per-frame CPU section timer.
package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
)

// Sample is the accumulated time of one named section in the current frame.
type Sample struct {
	Name     string
	Duration time.Duration
}

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("scene.Render")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears the per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of the current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// SumWithPrefix adds up every section whose name starts with prefix.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var total time.Duration
	for k, v := range frameTotals {
		if strings.HasPrefix(k, prefix) {
			total += v
		}
	}
	return total
}

// Top returns the n slowest sections, slowest first. Ties sort by name.
func Top(n int) []Sample {
	ss := Snapshot()
	list := make([]Sample, 0, len(ss))
	for k, v := range ss {
		list = append(list, Sample{Name: k, Duration: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Duration != list[j].Duration {
			return list[i].Duration > list[j].Duration
		}
		return list[i].Name < list[j].Name
	})
	if n < 0 {
		n = 0
	}
	if n > len(list) {
		n = len(list)
	}
	return list[:n]
}

// TopN formats the n slowest sections.
// Example: "render.scene:4.2ms, input.Poll:0.3ms"
func TopN(n int) string {
	top := Top(n)
	parts := make([]string, 0, len(top))
	for _, s := range top {
		parts = append(parts, s.Name+":"+formatMs(s.Duration))
	}
	return strings.Join(parts, ", ")
}

// Fields renders the n slowest sections as zap fields for a log line.
func Fields(n int) []zap.Field {
	top := Top(n)
	fields := make([]zap.Field, 0, len(top))
	for _, s := range top {
		fields = append(fields, zap.Duration(s.Name, s.Duration))
	}
	return fields
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	s := strconv.FormatFloat(ms, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0") + "ms"
}
