// Package statefile keeps an engine snapshot on disk so a host can resume the
// animation where it stopped.
package statefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/cycloid-progress/internal/cycloid"
)

// ErrNoState is returned by Load when no state file exists.
var ErrNoState = errors.New("no saved state")

const fileVersion = 1

type document struct {
	Version int           `yaml:"version"`
	State   cycloid.State `yaml:"state"`
}

// DefaultPath returns the per-user state file path.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "cycloid-progress", "state.yaml"), nil
}

// Save writes st to path through a temporary file and a rename.
func Save(path string, st cycloid.State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := yaml.Marshal(document{Version: fileVersion, State: st})
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

// Load reads a state written by Save.
func Load(path string) (cycloid.State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cycloid.State{}, ErrNoState
	}
	if err != nil {
		return cycloid.State{}, fmt.Errorf("read state: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return cycloid.State{}, fmt.Errorf("parse state %s: %w", path, err)
	}
	if doc.Version != fileVersion {
		return cycloid.State{}, fmt.Errorf("state %s: unsupported version %d", path, doc.Version)
	}
	return doc.State, nil
}
