// Command cycloid-render steps a cycloid engine headlessly and writes frames
// as PNG files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/iburimskiy/cycloid-progress/internal/config"
	applog "github.com/iburimskiy/cycloid-progress/internal/log"
	"github.com/iburimskiy/cycloid-progress/internal/scheduler"
	"github.com/iburimskiy/cycloid-progress/internal/statefile"
	"github.com/iburimskiy/cycloid-progress/internal/surface"
)

type options struct {
	configPath string
	outDir     string
	width      int
	height     int
	frames     int
	every      int
	statePath  string
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "config file (default: per-user config.yaml)")
	flag.StringVar(&o.outDir, "out", "frames", "output directory")
	flag.IntVar(&o.width, "width", 300, "frame width in pixels")
	flag.IntVar(&o.height, "height", 300, "frame height in pixels")
	flag.IntVar(&o.frames, "frames", 200, "number of frames to step")
	flag.IntVar(&o.every, "every", 10, "write every Nth frame")
	flag.StringVar(&o.statePath, "state", "", "state file to resume from and save to")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options) error {
	cfg, cfgErr := config.Load(o.configPath)
	applog.Init(cfg.LogOptions())
	defer applog.Close()
	l := applog.WithComponent("render")
	if cfgErr != nil {
		l.Warn("using default configuration", slog.Any("err", cfgErr))
	}
	if o.frames <= 0 {
		return errors.New("frames must be positive")
	}
	if o.every <= 0 {
		o.every = 1
	}

	engine, err := cfg.NewEngine(1)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	if o.statePath != "" {
		st, err := statefile.Load(o.statePath)
		switch {
		case errors.Is(err, statefile.ErrNoState):
		case err != nil:
			l.Warn("saved state ignored", slog.Any("err", err))
		default:
			if err := st.Validate(); err != nil {
				l.Warn("saved state ignored", slog.Any("err", err))
				break
			}
			engine.OnRestore(st)
		}
	}
	if err := engine.OnSizeChanged(o.width, o.height); err != nil {
		return err
	}
	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}

	raster := surface.NewRaster(o.width, o.height)
	sched := scheduler.New(cfg.FrameDelay())
	n := 0
	err = sched.Run(ctx, func(now time.Time) error {
		if err := engine.Frame(now, raster); err != nil {
			return err
		}
		n++
		if n%o.every == 0 || n == o.frames {
			if err := writeFrame(filepath.Join(o.outDir, fmt.Sprintf("frame-%05d.png", n)), raster); err != nil {
				return err
			}
		}
		if n >= o.frames {
			return scheduler.ErrStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	l.Info("rendered", slog.Int("frames", n), slog.Int("progress", engine.Progress()), slog.String("out", o.outDir))

	if o.statePath != "" {
		if err := statefile.Save(o.statePath, engine.Snapshot()); err != nil {
			return err
		}
	}
	return nil
}

func writeFrame(path string, r *surface.Raster) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	if err := r.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close frame: %w", err)
	}
	return nil
}
