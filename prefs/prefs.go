// Package prefs remembers editor state between runs of the placement tools.
package prefs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	prefsObject   = "prefs"
	prefsProperty = "editor"

	maxRecent = 8
)

// Prefs is the editor state kept between runs
type Prefs struct {
	LastMetaDir    string   `yaml:"lastMetaDir"`
	RecentMetas    []string `yaml:"recentMetas"`
	UsePivotOffset bool     `yaml:"usePivotOffset"`
}

func Default() Prefs {
	return Prefs{LastMetaDir: "."}
}

// Store keeps Prefs in a gdata manager. A nil manager keeps them in memory only.
type Store struct {
	manager *gdata.Manager
	prefs   Prefs
}

// Open creates a Store backed by the per-user data directory of appName.
func Open(appName string) (*Store, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open prefs: %w", err)
	}
	return New(manager), nil
}

// New loads the stored prefs, falling back to defaults when none are saved.
func New(manager *gdata.Manager) *Store {
	s := &Store{manager: manager, prefs: Default()}
	if err := s.Load(); err != nil {
		log.Printf("[Prefs] Warning: Failed to load prefs: %v (using defaults)", err)
	}
	return s
}

func (s *Store) Load() error {
	s.prefs = Default()
	if s.manager == nil || !s.manager.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}

	data, err := s.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("failed to load prefs: %w", err)
	}

	var loaded Prefs
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal prefs: %w", err)
	}
	if loaded.LastMetaDir == "" {
		loaded.LastMetaDir = "."
	}
	s.prefs = loaded
	return nil
}

func (s *Store) Save() error {
	if s.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(s.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}
	if err := s.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("failed to save prefs: %w", err)
	}
	return nil
}

func (s *Store) Prefs() Prefs { return s.prefs }

func (s *Store) LastMetaDir() string { return s.prefs.LastMetaDir }

// ResolveMeta finds a meta file given on the command line. A relative path
// missing from the working directory is looked up in the last meta directory.
func (s *Store) ResolveMeta(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}

	candidate := filepath.Join(s.prefs.LastMetaDir, path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return path
}

// RememberMeta records dir as the last opened location and moves metaPath to
// the front of the recent list. Changes stay in memory until Save.
func (s *Store) RememberMeta(dir, metaPath string) {
	s.prefs.LastMetaDir = dir

	recent := []string{metaPath}
	for _, p := range s.prefs.RecentMetas {
		if p != metaPath && len(recent) < maxRecent {
			recent = append(recent, p)
		}
	}
	s.prefs.RecentMetas = recent
}

func (s *Store) SetUsePivotOffset(use bool) { s.prefs.UsePivotOffset = use }
