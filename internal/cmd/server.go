package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"littlex/internal/api"
	"littlex/internal/assistant"
	"littlex/internal/cmd/flags"
	"littlex/internal/config"
	"littlex/internal/dispatch"
	"littlex/internal/feed"
	"littlex/internal/media"
	"littlex/internal/metrics"
)

var serverCmd = &cli.Command{
	Name:  "server",
	Usage: "Run the feed API server",
	Flags: []cli.Flag{
		flags.Addr,
		flags.MetricsAddr,
		flags.MediaDir,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&config.Secrets{}),
			pal.Provide(&feed.Store{}),
			pal.Provide(&dispatch.Dispatcher{}),
			pal.Provide(&assistant.Assistant{}),
			pal.Provide(&media.Store{}),
			pal.Provide(&api.Server{}),
			metrics.Provide(),
		)
	},
}
