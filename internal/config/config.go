package config

import (
	"fmt"
	"os"
)

type Driver interface {
	Exists() (bool, error)
	Read() (Config, error)
}

// NewStore fails when the driver has nothing to read. Missing files are never created.
func NewStore(driver Driver) (Store, error) {
	exists, err := driver.Exists()
	if err != nil {
		return Store{}, err
	}
	if !exists {
		return Store{}, fmt.Errorf("%s: %w", driver, os.ErrNotExist)
	}

	return Store{
		driver: driver,
	}, nil
}

type Store struct {
	driver Driver
}

// GetConfig reads the config and fills in anything the source left empty.
func (p *Store) GetConfig() (Config, error) {
	cfg, err := p.driver.Read()
	if err != nil {
		return Config{}, err
	}

	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	if cfg.ClearColor == nil {
		cfg.ClearColor = Default().ClearColor
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", p.driver, err)
	}

	return cfg, nil
}
