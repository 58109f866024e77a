package game

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"
)

// ErrUnsupportedAudio is returned for files with an unknown extension.
var ErrUnsupportedAudio = errors.New("unsupported audio file")

// player is the audio chain: streamer -> progress tap -> ctrl -> speaker.
type player struct {
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *progressTap

	initDone bool
}

func (p *player) loaded() bool { return p.tap != nil }

func (p *player) duration() time.Duration {
	if p.tap == nil {
		return 0
	}
	return p.format.SampleRate.D(p.tap.total)
}

func (p *player) elapsed() time.Duration {
	if p.tap == nil {
		return 0
	}
	return p.format.SampleRate.D(p.tap.position())
}

func (p *player) setPaused(paused bool) {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// release closes the current stream. Safe to call when nothing is loaded.
func (p *player) release() {
	if p.initDone {
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
	}
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		_ = p.file.Close()
		p.file = nil
	}
	p.ctrl = nil
	p.tap = nil
}

func (p *player) close() {
	p.release()
	if p.initDone {
		speaker.Close()
		p.initDone = false
	}
}

func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedAudio, filepath.Ext(path))
	}
}

// load decodes path and starts playing it from the beginning.
func (p *player) load(path string, log *slog.Logger) error {
	p.release()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	streamer, format, err := decode(path, f)
	if err != nil {
		_ = f.Close()
		return err
	}

	tap := newProgressTap(streamer, streamer.Len())
	ctrl := &beep.Ctrl{Streamer: tap}

	bufferSize := format.SampleRate.N(time.Second / 20)
	if !p.initDone || p.format.SampleRate != format.SampleRate {
		if p.initDone {
			speaker.Close()
		}
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			p.initDone = false
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
	}

	p.file = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = tap

	// The callback runs on the speaker goroutine; only flag the tap there and
	// let the game loop release resources.
	speaker.Play(beep.Seq(ctrl, beep.Callback(tap.finish)))
	log.Info("playing", slog.String("file", path), slog.Duration("duration", p.duration()))
	return nil
}

// selectAudioFile asks the user for an audio file. An empty path means the
// dialog was canceled.
func selectAudioFile() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("select file: %w", err)
	}
	return filename, nil
}
