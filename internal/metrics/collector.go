package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"littlex/internal/feed"
)

var feedSize = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "littlex_feed_posts",
	Help: "Current number of posts in the feed store.",
})

// Collector samples store-level gauges on a fixed interval.
type Collector struct {
	Logger *slog.Logger
	Store  *feed.Store
}

func (c *Collector) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "metrics.Collector")
	return nil
}

func (c *Collector) Run(ctx context.Context) error {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			feedSize.Set(float64(c.Store.Len()))
		}
	}
}
