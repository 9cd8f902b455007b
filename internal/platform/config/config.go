package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures HTTP server level configuration. The dispatch core reads
// none of it; only main and the transport layer do.
type Server struct {
	Addr              string        `env:"NEBULA_ADDR" envDefault:":8080"`
	LogLevel          string        `env:"NEBULA_LOG_LEVEL" envDefault:"info"`
	LogFormat         string        `env:"NEBULA_LOG_FORMAT" envDefault:"json"`
	SelectorKey       string        `env:"NEBULA_SELECTOR_KEY" envDefault:"cmd"`
	ShutdownTimeout   time.Duration `env:"NEBULA_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ReadHeaderTimeout time.Duration `env:"NEBULA_READ_HEADER_TIMEOUT" envDefault:"5s"`
	MetricsEnabled    bool          `env:"NEBULA_METRICS_ENABLED" envDefault:"true"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (s Server) Validate() error {
	switch s.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format %q: want json or text", s.LogFormat)
	}
	if s.SelectorKey == "" {
		return fmt.Errorf("selector key must not be empty")
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	return nil
}
