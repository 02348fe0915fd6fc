package config

import (
	"context"

	"github.com/kelseyhightower/envconfig"
)

// Config is filled from CLI flags (which themselves fall back to env vars).
type Config struct {
	Addr        string `flag:"addr"`
	MetricsAddr string `flag:"metrics-addr"`
	MediaDir    string `flag:"media-dir"`
	LogLevel    string `flag:"log-level"`
}

// Secrets holds provider credentials. They never travel through flags.
type Secrets struct {
	DeepseekAPIKey string `envconfig:"DEEPSEEK_API_KEY"`
	OpenAIAPIKey   string `envconfig:"OPENAI_API_KEY"`
}

func (s *Secrets) Init(_ context.Context) error {
	return envconfig.Process("", s)
}
