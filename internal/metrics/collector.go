package metrics

import (
	"context"
	"time"

	"github.com/nftjctl/nftjctl/internal/clock"
	"github.com/nftjctl/nftjctl/internal/engine"
	"github.com/nftjctl/nftjctl/internal/logging"
	"github.com/nftjctl/nftjctl/internal/objects"
)

// Collector polls the engine on an interval and updates the registry
// with the latest counter and quota readings.
type Collector struct {
	registry *Registry
	engine   engine.Engine
	logger   *logging.Logger
	clk      clock.Clock
	interval time.Duration
}

// NewCollector creates a collector. A nil registry gets the global one,
// a nil logger the default, a nil clk the real clock.
func NewCollector(reg *Registry, eng engine.Engine, logger *logging.Logger, clk clock.Clock, interval time.Duration) *Collector {
	if reg == nil {
		reg = Get()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if clk == nil {
		clk = &clock.RealClock{}
	}
	return &Collector{
		registry: reg,
		engine:   eng,
		logger:   logger.WithComponent("metrics"),
		clk:      clk,
		interval: interval,
	}
}

// Run polls until ctx is cancelled. Scrape failures are logged and
// counted, not fatal; the next tick tries again.
func (c *Collector) Run(ctx context.Context) {
	c.logger.Info("starting collector", "interval", c.interval.String())

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.CollectOnce(); err != nil {
				c.logger.Warn("scrape failed", "error", err)
			}
		case <-ctx.Done():
			c.logger.Info("stopping collector")
			return
		}
	}
}

// CollectOnce performs a single scrape of counters, quotas, and the
// ruleset rule count.
func (c *Collector) CollectOnce() error {
	counters, err := objects.Counters(c.engine)
	if err != nil {
		c.registry.ScrapesTotal.WithLabelValues("failure").Inc()
		return err
	}
	for _, ctr := range counters {
		c.registry.CounterPackets.WithLabelValues(ctr.Family, ctr.Table, ctr.Name).Set(float64(ctr.Packets))
		c.registry.CounterBytes.WithLabelValues(ctr.Family, ctr.Table, ctr.Name).Set(float64(ctr.Bytes))
	}

	quotas, err := objects.Quotas(c.engine)
	if err != nil {
		c.registry.ScrapesTotal.WithLabelValues("failure").Inc()
		return err
	}
	for _, q := range quotas {
		c.registry.QuotaUsedBytes.WithLabelValues(q.Family, q.Table, q.Name).Set(float64(q.Used))
		c.registry.QuotaLimitBytes.WithLabelValues(q.Family, q.Table, q.Name).Set(float64(q.Bytes))
	}

	doc, err := c.engine.List(engine.ListRuleset)
	if err != nil {
		c.registry.ScrapesTotal.WithLabelValues("failure").Inc()
		return err
	}
	c.registry.RulesetRules.Set(float64(len(doc.Rules())))

	c.registry.ScrapesTotal.WithLabelValues("success").Inc()
	c.registry.LastScrapeUnix.Set(float64(c.clk.Now().Unix()))
	return nil
}
