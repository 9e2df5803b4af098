// Package meta loads the per-avatar metadata: which model files make up the
// avatar and where each sub-model sits relative to the main one.
package meta

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Offset is a sub-model offset in model units, Y pointing down
type Offset struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Meta describes one avatar
//
// File layout:
//
//	name: anon
//	formatText: "changeFigure:{name} -motion={motion} -expression={expression}"
//	transformFormatText: "{\"position\":{\"x\":{x},\"y\":{y}}}"
//	modelFilePaths: [body/model.json, hair/model.json]
//	offsets: [{x: 0, y: 0}, {x: 12, y: -40}]
//
// Index 0 of ModelFilePaths is the main sub-model.
type Meta struct {
	Name                string   `yaml:"name"`
	FormatText          string   `yaml:"formatText"`
	TransformFormatText string   `yaml:"transformFormatText"`
	ModelFilePaths      []string `yaml:"modelFilePaths"`
	Offsets             []Offset `yaml:"offsets"`

	// dir resolves relative model paths, empty means as-is
	dir string
}

// Load reads a meta file. Relative model paths resolve against its directory.
func Load(path string) (*Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model meta: %w", err)
	}

	var m Meta
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model meta: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model meta %s: %w", path, err)
	}

	m.dir = filepath.Dir(path)
	return &m, nil
}

func (m *Meta) Validate() error {
	if len(m.ModelFilePaths) == 0 {
		return errors.New("modelFilePaths is empty")
	}

	return nil
}

// Dir is the directory relative model paths resolve against
func (m *Meta) Dir() string {
	return m.dir
}

// ModelCount is the number of declared model files, main included
func (m *Meta) ModelCount() int {
	return len(m.ModelFilePaths)
}

// ModelFilePath returns the resolved path of model index, or "" when none is declared
func (m *Meta) ModelFilePath(index int) string {
	if index < 0 || index >= len(m.ModelFilePaths) {
		return ""
	}

	path := m.ModelFilePaths[index]
	if path == "" || filepath.IsAbs(path) || m.dir == "" {
		return path
	}

	return filepath.Join(m.dir, path)
}

// ModelOffset returns the declared offset of model index, (0, 0) when undeclared
func (m *Meta) ModelOffset(index int) (offsetX, offsetY float64) {
	if index < 0 || index >= len(m.Offsets) {
		return 0, 0
	}

	return m.Offsets[index].X, m.Offsets[index].Y
}

// ModelDirs lists the distinct directories holding the declared model files
func (m *Meta) ModelDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for i := range m.ModelFilePaths {
		path := m.ModelFilePath(i)
		if path == "" {
			continue
		}

		dir := filepath.Dir(path)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	return dirs
}
