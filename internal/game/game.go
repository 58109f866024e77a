// Package game is the desktop host: an ebiten window that drives a cycloid
// engine on a fixed-delay frame schedule and ties progress to audio playback.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/cycloid-progress/internal/cycloid"
	applog "github.com/iburimskiy/cycloid-progress/internal/log"
	"github.com/iburimskiy/cycloid-progress/internal/scheduler"
	"github.com/iburimskiy/cycloid-progress/internal/statefile"
	"github.com/iburimskiy/cycloid-progress/internal/surface"
)

// Game implements ebiten.Game.
type Game struct {
	engine    *cycloid.Engine
	sched     *scheduler.Scheduler
	density   float64
	statePath string
	log       *slog.Logger

	width, height int

	audio   player
	paused  bool
	lastErr error
	frameFailing bool
}

// Options configures a Game.
type Options struct {
	FrameDelay time.Duration
	// Density scales the window size to device pixels.
	Density float64
	// StatePath, when set, is where Close saves the engine snapshot.
	StatePath string
}

// New returns a game driving engine.
func New(engine *cycloid.Engine, opts Options) *Game {
	if opts.Density <= 0 {
		opts.Density = 1
	}
	return &Game{
		engine:    engine,
		sched:     scheduler.New(opts.FrameDelay),
		density:   opts.Density,
		statePath: opts.StatePath,
		log:       applog.WithComponent("game"),
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if err := g.openAndPlayFileDialog(); err != nil {
			g.lastErr = err
			g.log.Error("open audio failed", slog.Any("err", err))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.updateAudioProgress()
	return nil
}

func (g *Game) updateAudioProgress() {
	if !g.audio.loaded() {
		return
	}
	g.engine.SetFraction(g.audio.tap.fraction())
	if g.audio.tap.finished() {
		g.log.Info("playback finished")
		g.audio.release()
		g.engine.SetShapeDynamic(!g.paused)
	}
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	g.audio.setPaused(g.paused)
	// While audio drives progress the timer must not advance it.
	g.engine.SetShapeDynamic(!g.paused && !g.audio.loaded())
}

func (g *Game) openAndPlayFileDialog() error {
	path, err := selectAudioFile()
	if err != nil || path == "" {
		return err
	}
	if err := g.audio.load(path, g.log); err != nil {
		return err
	}
	g.paused = false
	g.engine.SetShapeDynamic(false)
	g.engine.SetProgress(0)
	g.lastErr = nil
	return nil
}

// Draw steps the engine when the scheduler says a frame is due. The screen
// is not cleared between frames, so skipped calls keep the previous image.
func (g *Game) Draw(screen *ebiten.Image) {
	now := time.Now()
	if !g.sched.Due(now) {
		return
	}
	g.frameResult(g.engine.Frame(now, surface.NewEbiten(screen)))
	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
	g.sched.Done(time.Now())
}

// frameResult records the outcome of one frame. A run of ErrInvalidState
// failures is logged once; it reports whether err was logged.
func (g *Game) frameResult(err error) bool {
	if err == nil {
		if g.frameFailing {
			g.frameFailing = false
			g.lastErr = nil
		}
		return false
	}
	logged := !g.frameFailing || !errors.Is(err, cycloid.ErrInvalidState)
	if logged {
		g.log.Warn("frame skipped", slog.Any("err", err))
	}
	g.frameFailing = true
	g.lastErr = err
	return logged
}

func (g *Game) status() string {
	from, to := g.engine.Range()
	s := fmt.Sprintf("progress %d/%d (from %d)", g.engine.Progress(), to, from)
	switch {
	case g.audio.loaded():
		s += fmt.Sprintf(" | %s / %s", formatDuration(g.audio.elapsed()), formatDuration(g.audio.duration()))
	case g.paused:
		s += " | paused"
	}
	if g.lastErr != nil {
		s += " | error: " + g.lastErr.Error()
	}
	return s
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := int(float64(outsideWidth) * g.density)
	h := int(float64(outsideHeight) * g.density)
	if w != g.width || h != g.height {
		if err := g.engine.OnSizeChanged(w, h); err != nil {
			g.log.Warn("size change rejected", slog.Int("width", w), slog.Int("height", h), slog.Any("err", err))
		} else {
			g.width, g.height = w, h
		}
	}
	return max(w, 1), max(h, 1)
}

// Close stops audio and saves the engine snapshot when a state path is set.
func (g *Game) Close() error {
	g.audio.close()
	if g.statePath == "" {
		return nil
	}
	if err := statefile.Save(g.statePath, g.engine.Snapshot()); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	g.log.Info("state saved", slog.String("path", g.statePath))
	return nil
}
