package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"scenery/internal/config"
	"scenery/internal/game"
	"scenery/internal/graphics"
	"scenery/internal/logging"
	"scenery/internal/render"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/pflag"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

func init() {
	runtime.LockOSThread()
}

type options struct {
	root         string
	config       string
	width        int
	height       int
	fps          int
	vsync        bool
	wireframe    bool
	logLevel     string
	dev          bool
	watchShaders bool
}

func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("scenery", pflag.ContinueOnError)
	fs.StringVar(&opts.root, "root", "assets", "asset root directory; relative paths in the config resolve against it")
	fs.StringVarP(&opts.config, "config", "c", "", "config file (default <root>/"+config.DefaultFileName+")")
	fs.IntVar(&opts.width, "width", 0, "window width")
	fs.IntVar(&opts.height, "height", 0, "window height")
	fs.IntVar(&opts.fps, "fps", 0, "frame rate limit, 0 disables it")
	fs.BoolVar(&opts.vsync, "vsync", false, "wait for vertical sync")
	fs.BoolVar(&opts.wireframe, "wireframe", false, "start in wireframe mode")
	fs.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	fs.BoolVar(&opts.dev, "dev", false, "human readable development logging")
	fs.BoolVar(&opts.watchShaders, "watch-shaders", false, "reload shaders when their files change")
	return fs
}

// configPath picks the explicit config file or the default one in root.
func configPath(opts *options) string {
	if opts.config != "" {
		return opts.config
	}
	return filepath.Join(opts.root, config.DefaultFileName)
}

// applyFlags overrides config values with the flags that were set explicitly.
func applyFlags(cfg *config.Config, fs *pflag.FlagSet, opts *options) error {
	if fs.Changed("width") {
		cfg.Window.Width = opts.width
	}
	if fs.Changed("height") {
		cfg.Window.Height = opts.height
	}
	if fs.Changed("vsync") {
		cfg.Window.VSync = opts.vsync
	}
	if fs.Changed("fps") {
		cfg.Render.FPSLimit = opts.fps
	}
	if fs.Changed("wireframe") {
		cfg.Render.Wireframe = opts.wireframe
	}
	if fs.Changed("watch-shaders") {
		cfg.Render.WatchShaders = opts.watchShaders
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if fs.Changed("dev") {
		cfg.Log.Development = opts.dev
	}
	return cfg.Validate()
}

func main() {
	defer closer.Close()

	var opts options
	fs := newFlagSet(&opts)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		closer.Fatalln(err)
	}

	cfg, err := config.Load(configPath(&opts))
	if err != nil {
		closer.Fatalln(err)
	}
	if err := applyFlags(cfg, fs, &opts); err != nil {
		closer.Fatalln(err)
	}

	if err := logging.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		closer.Fatalln(err)
	}
	closer.Bind(logging.Sync)
	log := logging.L()

	config.SetFPSLimit(cfg.Render.FPSLimit)
	config.SetWireframe(cfg.Render.Wireframe)

	// GL resources are released by defers on this locked thread; closer only
	// flushes logs and handles fatal exits.
	if err := glfw.Init(); err != nil {
		closer.Fatalln(err)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(cfg.Window)
	if err != nil {
		closer.Fatalln(err)
	}
	defer window.Destroy()

	factory := render.NewFactory(opts.root, cfg.Render.ShaderDir)
	defer factory.Dispose()

	sc, err := game.BuildScene(context.Background(), cfg, factory)
	if err != nil {
		closer.Fatalln(err)
	}

	var watcher *graphics.ShaderWatcher
	if cfg.Render.WatchShaders {
		watcher, err = graphics.WatchShaders(factory.ShaderDir())
		if err != nil {
			log.Warn("shader hot reload disabled", zap.String("dir", factory.ShaderDir()), zap.Error(err))
			watcher = nil
		}
	}

	app := game.NewApp(window, cfg, factory, sc, watcher)
	defer app.Close()

	log.Info("starting",
		zap.String("root", opts.root),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("fps_limit", cfg.Render.FPSLimit),
	)
	app.Run()
}
