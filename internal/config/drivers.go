package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ItsNotGoodName/x-shapes/internal/core"
	"gopkg.in/yaml.v3"
)

// NewDriver picks a driver from the file extension. An empty path gives the built-in defaults.
func NewDriver(filePath string) Driver {
	if filePath == "" {
		return NewMemory(Default())
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json":
		return NewJSON(filePath)
	default:
		return NewYAML(filePath)
	}
}

func NewYAML(filePath string) YAML {
	return YAML{
		filePath: filePath,
	}
}

type YAML struct {
	filePath string
}

func (y YAML) String() string {
	return "config.YAML(" + y.filePath + ")"
}

// Exists implements Driver.
func (y YAML) Exists() (bool, error) {
	return core.FileExists(y.filePath)
}

func (y YAML) Read() (Config, error) {
	return readFile(y.filePath, func(r io.Reader, cfg *Config) error {
		err := yaml.NewDecoder(r).Decode(cfg)
		if err == io.EOF {
			return nil
		}
		return err
	})
}

func NewJSON(filePath string) JSON {
	return JSON{
		filePath: filePath,
	}
}

type JSON struct {
	filePath string
}

func (j JSON) String() string {
	return "config.JSON(" + j.filePath + ")"
}

// Exists implements Driver.
func (j JSON) Exists() (bool, error) {
	return core.FileExists(j.filePath)
}

func (j JSON) Read() (Config, error) {
	return readFile(j.filePath, func(r io.Reader, cfg *Config) error {
		return json.NewDecoder(r).Decode(cfg)
	})
}

// readFile decodes on top of the defaults so absent keys keep their default value.
func readFile(filePath string, decode func(r io.Reader, cfg *Config) error) (Config, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	cfg := Default()
	if err := decode(file, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func NewMemory(cfg Config) *Memory {
	return &Memory{cfg: cfg}
}

// Memory serves a fixed config. It is read-only.
type Memory struct {
	cfg Config
}

func (m *Memory) String() string {
	return "config.Memory"
}

// Exists implements Driver.
func (m *Memory) Exists() (bool, error) {
	return true, nil
}

func (m *Memory) Read() (Config, error) {
	cfg := m.cfg
	cfg.ClearColor = append([]float32(nil), m.cfg.ClearColor...)
	return cfg, nil
}
