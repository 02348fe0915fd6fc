package flags

import (
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

var Addr = &cli.StringFlag{
	Name:    "addr",
	Aliases: []string{"a"},
	Usage:   "The address the API server listens on",
	Value:   ":8000",
	Sources: cli.EnvVars("LITTLEX_ADDR"),
}

var MetricsAddr = &cli.StringFlag{
	Name:    "metrics-addr",
	Usage:   "The address the metrics server listens on",
	Value:   ":8080",
	Sources: cli.EnvVars("LITTLEX_METRICS_ADDR"),
}

var MediaDir = &cli.StringFlag{
	Name:    "media-dir",
	Aliases: []string{"m"},
	Usage:   "The directory uploaded media is stored in and served from",
	Value:   "media",
	Sources: cli.EnvVars("MEDIA_DIR"),
}

var LogLevel = &cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"l"},
	Usage:   "The level of the logs",
	Value:   "info",
	Validator: func(value string) error {
		if !slices.Contains(validLogLevels, value) {
			return fmt.Errorf("invalid log level: %s, allowed values are: %s", value, validLogLevels)
		}
		return nil
	},
	Sources: cli.EnvVars("LOG_LEVEL"),
}
