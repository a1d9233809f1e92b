// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package clientconfig loads the terminal client's settings from the
environment.
*/
package clientconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Transition phases of a wizard step change: the old step fades out, then
// the new one fades in. The step input is locked for their sum.
const (
	DefaultFadeOut = 180 * time.Millisecond
	DefaultFadeIn  = 200 * time.Millisecond
)

// Config holds the terminal client configuration.
type Config struct {
	// APIURL is the base URL of the catalogue API.
	APIURL string `env:"SHORTWAVE_API_URL" envDefault:"http://localhost:8080"`

	// LogPath receives the client's logs. Empty discards them, since the
	// alternate screen cannot share stdout.
	LogPath string `env:"SHORTWAVE_LOG"`

	// TransitionMS overrides the total wizard transition length. Zero keeps
	// the default fade timings; negative values are rejected.
	TransitionMS int `env:"SHORTWAVE_TRANSITION_MS" envDefault:"0"`
}

// Load parses environment variables into a [Config].
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("clientconfig: failed to parse environment variables: %w", err)
	}
	if cfg.TransitionMS < 0 {
		return nil, fmt.Errorf("clientconfig: SHORTWAVE_TRANSITION_MS must not be negative, got %d", cfg.TransitionMS)
	}
	return cfg, nil
}

// Fades returns the fade-out and fade-in durations. An override keeps the
// default proportions.
func (c *Config) Fades() (out, in time.Duration) {
	if c.TransitionMS == 0 {
		return DefaultFadeOut, DefaultFadeIn
	}
	total := time.Duration(c.TransitionMS) * time.Millisecond
	out = total * DefaultFadeOut / (DefaultFadeOut + DefaultFadeIn)
	return out, total - out
}
