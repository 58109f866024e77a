package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/cycloid-progress/internal/config"
	"github.com/iburimskiy/cycloid-progress/internal/game"
	applog "github.com/iburimskiy/cycloid-progress/internal/log"
	"github.com/iburimskiy/cycloid-progress/internal/statefile"
)

func main() {
	cfgPath := flag.String("config", "", "config file (default: per-user config.yaml)")
	fresh := flag.Bool("fresh", false, "ignore the saved animation state")
	writeCfg := flag.Bool("write-config", false, "write the effective configuration to the config file and exit")
	flag.Parse()

	if *writeCfg {
		if err := writeConfig(*cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}
	if err := run(*cfgPath, *fresh); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// writeConfig saves the defaults merged with the existing file and env
// overrides, so users get a complete file to edit.
func writeConfig(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if cfgPath == "" {
		if cfgPath, err = config.Path(); err != nil {
			return err
		}
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}
	fmt.Println(cfgPath)
	return nil
}

func run(cfgPath string, fresh bool) error {
	cfg, cfgErr := config.Load(cfgPath)
	applog.Init(cfg.LogOptions())
	defer applog.Close()
	l := applog.WithComponent("main")
	if cfgErr != nil {
		l.Warn("using default configuration", slog.Any("err", cfgErr))
	}

	density := float64(cfg.Window.Density)
	if density <= 0 {
		density = ebiten.Monitor().DeviceScaleFactor()
	}
	engine, err := cfg.NewEngine(float32(density))
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	statePath := cfg.StateFile
	if statePath == "" {
		if statePath, err = statefile.DefaultPath(); err != nil {
			l.Warn("state will not be saved", slog.Any("err", err))
		}
	}
	if statePath != "" && !fresh {
		st, err := statefile.Load(statePath)
		switch {
		case errors.Is(err, statefile.ErrNoState):
		case err != nil:
			l.Warn("saved state ignored", slog.Any("err", err))
		default:
			if err := st.Validate(); err != nil {
				l.Warn("saved state ignored", slog.String("path", statePath), slog.Any("err", err))
				break
			}
			engine.OnRestore(st)
			l.Info("state restored", slog.String("path", statePath), slog.Int("progress", engine.Progress()))
		}
	}

	g := game.New(engine, game.Options{
		FrameDelay: cfg.FrameDelay(),
		Density:    density,
		StatePath:  statePath,
	})
	defer func() {
		if err := g.Close(); err != nil {
			l.Error("shutdown", slog.Any("err", err))
		}
	}()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
