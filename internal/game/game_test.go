package game

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/iburimskiy/cycloid-progress/internal/cycloid"
)

func TestFrameResultLogsInvalidStateOnce(t *testing.T) {
	g := &Game{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	sizeErr := fmt.Errorf("%w: width must be more than zero", cycloid.ErrInvalidState)

	if !g.frameResult(sizeErr) {
		t.Fatalf("first failure was not logged")
	}
	for i := 0; i < 3; i++ {
		if g.frameResult(fmt.Errorf("%w: height must be more than zero", cycloid.ErrInvalidState)) {
			t.Fatalf("repeated invalid-state failure %d was logged", i)
		}
	}
	if !errors.Is(g.lastErr, cycloid.ErrInvalidState) {
		t.Fatalf("lastErr = %v", g.lastErr)
	}
	if g.frameResult(errors.New("surface lost")) != true {
		t.Fatalf("a different error was not logged")
	}

	if g.frameResult(nil) {
		t.Fatalf("success reported as logged")
	}
	if g.lastErr != nil {
		t.Fatalf("lastErr not cleared after a good frame: %v", g.lastErr)
	}
	if !g.frameResult(sizeErr) {
		t.Fatalf("failure after recovery was not logged")
	}
}
