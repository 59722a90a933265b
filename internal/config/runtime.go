package config

import "sync"

// RuntimeSettings holds settings that change while the viewer runs.
type RuntimeSettings struct {
	mu        sync.RWMutex
	fpsLimit  int
	wireframe bool
}

var globalRuntimeSettings = &RuntimeSettings{
	fpsLimit: 60,
}

// MaxFPSLimit caps the frame limiter target.
const MaxFPSLimit = 1000

// GetFPSLimit returns the frame rate target; 0 means unlimited.
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame rate target. Negative values mean unlimited.
func SetFPSLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	if limit > MaxFPSLimit {
		limit = MaxFPSLimit
	}
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.fpsLimit = limit
}

// GetWireframe reports whether the scene is drawn as lines.
func GetWireframe() bool {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.wireframe
}

func SetWireframe(on bool) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.wireframe = on
}

// ToggleWireframe flips wireframe mode and returns the new state.
func ToggleWireframe() bool {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.wireframe = !globalRuntimeSettings.wireframe
	return globalRuntimeSettings.wireframe
}
