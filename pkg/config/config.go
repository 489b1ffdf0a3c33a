// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v9"
)

// Config holds the settings a run can take from the environment. Command-line
// flags override them.
type Config struct {
	// ProcRoot is the procfs mount to read.
	ProcRoot string `env:"PSAUX_PROC_ROOT" envDefault:"/proc"`
	// ClockTicks and PageSize override the host constants when > 0.
	ClockTicks int64  `env:"CLK_TCK"`
	PageSize   int    `env:"PAGE_SIZE"`
	Workers    int    `env:"PSAUX_WORKERS" envDefault:"4"`
	Format     string `env:"PSAUX_FORMAT" envDefault:"table"`
	Sort       string `env:"PSAUX_SORT" envDefault:"none"`
}

var (
	ErrWorkers    = errors.New("config: workers must be at least 1")
	ErrClockTicks = errors.New("config: clock ticks must not be negative")
	ErrPageSize   = errors.New("config: page size must not be negative")
	ErrProcRoot   = errors.New("config: proc root must not be empty")
)

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses vars instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var c Config
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks c after env parsing and after flags were applied. Format
// and Sort are left to the renderer that interprets them.
func (c Config) Validate() error {
	if c.ProcRoot == "" {
		return ErrProcRoot
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: got %d", ErrWorkers, c.Workers)
	}
	if c.ClockTicks < 0 {
		return fmt.Errorf("%w: got %d", ErrClockTicks, c.ClockTicks)
	}
	if c.PageSize < 0 {
		return fmt.Errorf("%w: got %d", ErrPageSize, c.PageSize)
	}
	return nil
}
