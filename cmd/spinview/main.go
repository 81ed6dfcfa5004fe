// Command spinview shows three spinning solids with one control panel each,
// in a window or in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/hashicorp/go-hclog"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/spinview"
	"github.com/phanxgames/spinview/ebitenview"
	"github.com/phanxgames/spinview/ecs"
	"github.com/phanxgames/spinview/term"
)

type options struct {
	term        bool
	width       int
	height      int
	fps         bool
	lit         bool
	debug       bool
	trace       bool
	logLevel    string
	logFile     string
	script      string
	screenshots string
	charset     string
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("spinview", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.BoolVar(&o.term, "term", false, "Render in the terminal instead of a window.")
	fs.IntVar(&o.width, "width", 1280, "Window width.")
	fs.IntVar(&o.height, "height", 720, "Window height.")
	fs.BoolVar(&o.fps, "fps", false, "Show the FPS overlay.")
	fs.BoolVar(&o.lit, "lit", false, "Shade faces by their angle to the light.")
	fs.BoolVar(&o.debug, "debug", false, "Log per-frame stats and scene assertions.")
	fs.BoolVar(&o.trace, "trace", false, "Log every control change through the ECS bridge.")
	fs.StringVar(&o.logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error.")
	fs.StringVar(&o.logFile, "log-file", "", "Write logs to this file (terminal mode discards logs without it).")
	fs.StringVar(&o.script, "script", "", "Run a JSON script of control steps.")
	fs.StringVar(&o.screenshots, "screenshots", "screenshots", "Directory for screenshots.")
	fs.StringVar(&o.charset, "charset", "", "Terminal shading ramp, dark to bright.")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if o.debug {
		o.logLevel = "debug"
	}
	if hclog.LevelFromString(o.logLevel) == hclog.NoLevel {
		return o, fmt.Errorf("unknown log level %q", o.logLevel)
	}
	return o, nil
}

// newLogger builds the root logger. The terminal front-end owns the screen,
// so it logs only to a file.
func newLogger(o options, stderr io.Writer) (hclog.Logger, io.Closer, error) {
	out := stderr
	var closer io.Closer
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	} else if o.term {
		return hclog.NewNullLogger(), nil, nil
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "spinview",
		Level:  hclog.LevelFromString(o.logLevel),
		Output: out,
	}), closer, nil
}

func run(ctx context.Context, o options, stderr io.Writer) error {
	logger, closer, err := newLogger(o, stderr)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	scene := spinview.NewScene(spinview.DefaultConfig())
	scene.SetLogger(logger)
	scene.SetDebugMode(o.debug)

	if o.script != "" {
		data, err := os.ReadFile(o.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := spinview.LoadScript(data)
		if err != nil {
			return err
		}
		scene.SetScript(script)
		logger.Info("script loaded", "path", o.script)
	}

	if o.trace {
		enableTrace(scene, logger.Named("trace"))
	}

	if o.term {
		return term.Run(ctx, scene, term.Config{Charset: o.charset, Lit: o.lit})
	}
	return ebitenview.Run(scene, ebitenview.RunConfig{
		Width:         o.width,
		Height:        o.height,
		ShowFPS:       o.fps,
		Lit:           o.lit,
		ScreenshotDir: o.screenshots,
	})
}

// enableTrace routes control commits through a Donburi world and logs them
// once per frame.
func enableTrace(scene *spinview.Scene, logger hclog.Logger) *ecs.DonburiSink {
	world := donburi.NewWorld()
	sink := ecs.NewDonburiSink(world, scene.Panels())
	scene.SetEventSink(sink)
	ecs.ControlEventType.Subscribe(world, func(w donburi.World, e spinview.ControlEvent) {
		logger.Info("control changed",
			"panel", e.Title, "kind", e.Kind.String(), "speed", e.Speed, "visible", e.Visible)
	})
	scene.SetUpdateFunc(func() error {
		ecs.ControlEventType.ProcessEvents(world)
		return nil
	})
	return sink
}

func main() {
	o, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, o, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "spinview:", err)
		os.Exit(1)
	}
}
