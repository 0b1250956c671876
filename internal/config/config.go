package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ProjectID    string `env:"PROJECTID"`
	Region       string `env:"REGION"`
	LogLevel     string `env:"LOGLEVEL" envDefault:"info"`
	Port         string `env:"PORT" envDefault:"8080"`
	ServiceName  string `env:"SERVICENAME" envDefault:"timeline-api"`
	OTelEndpoint string `env:"OTELENDPOINT"` // tracing is off when empty
}

func New() (*Config, error) {
	cfg := new(Config)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
