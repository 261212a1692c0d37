package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewDriver_EmptyPathUsesDefaults(t *testing.T) {
	store, err := NewStore(NewDriver(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := store.GetConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Title != DefaultTitle {
		t.Fatalf("expected default title, got %q", cfg.Title)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Fatalf("expected 800x600, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FPS() != DefaultFrameRate {
		t.Fatalf("expected %d fps, got %d", DefaultFrameRate, cfg.FPS())
	}
	if cfg.Clear() != [4]float32{0, 0, 0, 0} {
		t.Fatalf("expected black clear color, got %v", cfg.Clear())
	}
}

func TestNewDriver_PicksByExtension(t *testing.T) {
	if _, ok := NewDriver("a.json").(JSON); !ok {
		t.Fatalf("expected JSON driver for .json")
	}
	if _, ok := NewDriver("a.yaml").(YAML); !ok {
		t.Fatalf("expected YAML driver for .yaml")
	}
	if _, ok := NewDriver("a.yml").(YAML); !ok {
		t.Fatalf("expected YAML driver for .yml")
	}
}

func TestNewStore_MissingFileIsNotCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewStore(NewYAML(path))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected %s to still not exist", path)
	}
}

func TestYAML_PartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, "demo.yaml", "title: shapes\nframe_rate: 0\n")

	store, err := NewStore(NewYAML(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := store.GetConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Title != "shapes" {
		t.Fatalf("expected title shapes, got %q", cfg.Title)
	}
	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
		t.Fatalf("expected default size, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FPS() != 0 {
		t.Fatalf("expected explicit frame_rate 0, got %d", cfg.FPS())
	}
}

func TestYAML_EmptyFile(t *testing.T) {
	path := writeFile(t, "demo.yaml", "")

	store, err := NewStore(NewYAML(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := store.GetConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Width != DefaultWidth {
		t.Fatalf("expected default width, got %d", cfg.Width)
	}
}

func TestJSON_Read(t *testing.T) {
	path := writeFile(t, "demo.json", `{"width": 1024, "height": 768, "clear_color": [0.1, 0.2, 0.3, 1]}`)

	store, err := NewStore(NewJSON(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := store.GetConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Width != 1024 || cfg.Height != 768 {
		t.Fatalf("expected 1024x768, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Clear() != [4]float32{0.1, 0.2, 0.3, 1} {
		t.Fatalf("unexpected clear color %v", cfg.Clear())
	}
	if cfg.Title != DefaultTitle {
		t.Fatalf("expected default title, got %q", cfg.Title)
	}
}

func TestJSON_Malformed(t *testing.T) {
	path := writeFile(t, "demo.json", `{"width": `)

	store, err := NewStore(NewJSON(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.GetConfig(); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestGetConfig_Validates(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero width", Config{Width: 0, Height: 600, ClearColor: []float32{0, 0, 0, 0}}},
		{"huge height", Config{Width: 800, Height: 70000, ClearColor: []float32{0, 0, 0, 0}}},
		{"short clear color", Config{Width: 800, Height: 600, ClearColor: []float32{0, 0}}},
		{"clear color out of range", Config{Width: 800, Height: 600, ClearColor: []float32{0, 0, 2, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStore(NewMemory(tt.cfg))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := store.GetConfig(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestMemory_ReadReturnsCopy(t *testing.T) {
	m := NewMemory(Default())

	first, err := m.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.ClearColor[0] = 1
	first.Title = "changed"

	second, err := m.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Title != DefaultTitle || second.ClearColor[0] != 0 {
		t.Fatalf("memory config was mutated through a read: %+v", second)
	}
}
