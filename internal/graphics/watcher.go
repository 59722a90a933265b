package graphics

import (
	"path/filepath"
	"strings"
	"sync"

	"scenery/internal/logging"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ShaderWatcher reports shader bases whose .vs or .fs file changed on disk.
// It never touches GL; the main loop drains Changes and calls Reload.
type ShaderWatcher struct {
	watcher *fsnotify.Watcher
	changes chan string
	done    chan struct{}
	once    sync.Once
}

// WatchShaders starts watching dir for shader edits.
func WatchShaders(dir string) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	sw := &ShaderWatcher{
		watcher: w,
		changes: make(chan string, 16),
		done:    make(chan struct{}),
	}
	go sw.loop()
	return sw, nil
}

func (sw *ShaderWatcher) loop() {
	for {
		select {
		case <-sw.done:
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			base, ok := shaderBase(event.Name)
			if !ok {
				continue
			}
			select {
			case sw.changes <- base:
			default:
				// main loop is behind; it will pick up the next edit
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			logging.L().Warn("shader watcher", zap.Error(err))
		}
	}
}

// shaderBase strips the shader suffix, reporting false for other files.
func shaderBase(name string) (string, bool) {
	ext := filepath.Ext(name)
	if ext != VertexExt && ext != FragmentExt {
		return "", false
	}
	return strings.TrimSuffix(name, ext), true
}

// Changes delivers shader base paths, e.g. "assets/shaders/default".
func (sw *ShaderWatcher) Changes() <-chan string { return sw.changes }

// Drain returns the distinct bases changed since the last call without blocking.
func (sw *ShaderWatcher) Drain() []string {
	var out []string
	seen := map[string]bool{}
	for {
		select {
		case base := <-sw.changes:
			if !seen[base] {
				seen[base] = true
				out = append(out, base)
			}
		default:
			return out
		}
	}
}

func (sw *ShaderWatcher) Close() error {
	var err error
	sw.once.Do(func() {
		close(sw.done)
		err = sw.watcher.Close()
	})
	return err
}
