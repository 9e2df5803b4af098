package meta

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleMeta = `
name: anon
formatText: "changeFigure:{name}"
modelFilePaths:
  - body/model.json
  - hair/model.json
  - /abs/extra.json
offsets:
  - {x: 0, y: 0}
  - {x: 12, y: -40}
`

func writeMeta(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "anon.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write meta file: %v", err)
	}

	return path
}

func TestLoad(t *testing.T) {
	path := writeMeta(t, sampleMeta)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if m.Name != "anon" {
		t.Errorf("Name = %q, want anon", m.Name)
	}
	if m.ModelCount() != 3 {
		t.Errorf("ModelCount() = %d, want 3", m.ModelCount())
	}
	if m.Dir() != filepath.Dir(path) {
		t.Errorf("Dir() = %q, want %q", m.Dir(), filepath.Dir(path))
	}
}

func TestModelFilePath(t *testing.T) {
	m, err := Load(writeMeta(t, sampleMeta))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tests := []struct {
		name  string
		index int
		want  string
	}{
		{"relative resolves against meta dir", 0, filepath.Join(m.Dir(), "body", "model.json")},
		{"absolute kept", 2, "/abs/extra.json"},
		{"negative index", -1, ""},
		{"past the end", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.ModelFilePath(tt.index); got != tt.want {
				t.Errorf("ModelFilePath(%d) = %q, want %q", tt.index, got, tt.want)
			}
		})
	}
}

func TestModelOffset(t *testing.T) {
	m := &Meta{
		ModelFilePaths: []string{"a", "b", "c"},
		Offsets:        []Offset{{X: 0, Y: 0}, {X: 12, Y: -40}},
	}

	if x, y := m.ModelOffset(1); x != 12 || y != -40 {
		t.Errorf("ModelOffset(1) = (%v, %v), want (12, -40)", x, y)
	}
	if x, y := m.ModelOffset(2); x != 0 || y != 0 {
		t.Errorf("undeclared ModelOffset(2) = (%v, %v), want (0, 0)", x, y)
	}
}

func TestModelDirs(t *testing.T) {
	m := &Meta{ModelFilePaths: []string{"/m/body/a.json", "/m/body/b.json", "/m/hair/c.json", ""}}

	dirs := m.ModelDirs()
	if len(dirs) != 2 || dirs[0] != "/m/body" || dirs[1] != "/m/hair" {
		t.Errorf("ModelDirs() = %v", dirs)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected an error for a missing file")
		}
	})

	t.Run("bad yaml", func(t *testing.T) {
		if _, err := Load(writeMeta(t, "modelFilePaths: [unterminated")); err == nil {
			t.Error("expected a parse error")
		}
	})

	t.Run("no models", func(t *testing.T) {
		_, err := Load(writeMeta(t, "name: empty\n"))
		if err == nil || !strings.Contains(err.Error(), "modelFilePaths") {
			t.Errorf("expected a validation error, got %v", err)
		}
	})
}
