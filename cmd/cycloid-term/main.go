// Command cycloid-term draws the cycloid progress ring in a terminal.
// Keys: space pauses, digits 0-9 jump progress, q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/cycloid-progress/internal/config"
	"github.com/iburimskiy/cycloid-progress/internal/cycloid"
	applog "github.com/iburimskiy/cycloid-progress/internal/log"
	"github.com/iburimskiy/cycloid-progress/internal/scheduler"
	"github.com/iburimskiy/cycloid-progress/internal/surface"
)

// cellPixels is how many virtual pixels one terminal column covers.
const cellPixels = 4

type app struct {
	screen tcell.Screen
	term   *surface.Term
	engine *cycloid.Engine
	sched  *scheduler.Scheduler
	log    *slog.Logger
}

func main() {
	cfgPath := flag.String("config", "", "config file (default: per-user config.yaml)")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	cfg, cfgErr := config.Load(cfgPath)
	// The screen owns stderr while running; log to the file only.
	opts := cfg.LogOptions()
	if opts.File == "" {
		opts.Level = "error"
	}
	applog.Init(opts)
	defer applog.Close()
	l := applog.WithComponent("term")
	if cfgErr != nil {
		l.Warn("using default configuration", slog.Any("err", cfgErr))
	}

	// Terminal cells are coarse; particles are drawn as single glyphs.
	engine, err := cfg.NewEngine(1)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	a := &app{
		screen: screen,
		term:   surface.NewTerm(screen, cellPixels),
		engine: engine,
		sched:  scheduler.New(cfg.FrameDelay()),
		log:    l,
	}
	if err := a.resize(); err != nil {
		return err
	}
	a.loop()
	return nil
}

func (a *app) resize() error {
	w, h := a.term.PixelSize()
	if err := a.engine.OnSizeChanged(w, h); err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	return nil
}

func (a *app) loop() {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(a.screen, events, done)

	ticker := time.NewTicker(a.sched.Delay())
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.handle(ev) {
				return
			}
		case now := <-ticker.C:
			if !a.sched.Due(now) {
				continue
			}
			if err := a.engine.Frame(now, a.term); err != nil {
				a.log.Error("frame", slog.Any("err", err))
				continue
			}
			a.screen.Show()
			a.sched.Done(time.Now())
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			a.engine.SetShapeDynamic(!a.engine.ShapeDynamic())
		case ev.Key() == tcell.KeyRune && ev.Rune() >= '0' && ev.Rune() <= '9':
			a.engine.SetFraction(float64(ev.Rune()-'0') / 9)
		}
	case *tcell.EventResize:
		a.screen.Sync()
		if err := a.resize(); err != nil {
			a.log.Warn("resize ignored", slog.Any("err", err))
		}
	}
	return true
}
