// Package metrics exports named counter and quota readings as Prometheus
// metrics. The values are read through the engine, so the exporter sees
// exactly what a listing would show.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once     sync.Once
	registry *Registry
)

// Registry holds all exported metrics. Counter readings are absolute
// values taken from the kernel, so they are modeled as gauges.
type Registry struct {
	CounterPackets *prometheus.GaugeVec
	CounterBytes   *prometheus.GaugeVec

	QuotaUsedBytes  *prometheus.GaugeVec
	QuotaLimitBytes *prometheus.GaugeVec

	RulesetRules prometheus.Gauge

	ScrapesTotal   *prometheus.CounterVec
	LastScrapeUnix prometheus.Gauge

	prom *prometheus.Registry
}

// Get returns the global metrics registry, creating it if necessary.
func Get() *Registry {
	once.Do(func() {
		registry = NewRegistry()
	})
	return registry
}

// NewRegistry creates a registry with its own backing Prometheus
// registry. Tests use this to avoid duplicate registration.
func NewRegistry() *Registry {
	prom := prometheus.NewRegistry()
	factory := promauto.With(prom)

	r := &Registry{prom: prom}

	objectLabels := []string{"family", "table", "name"}

	r.CounterPackets = factory.NewGaugeVec(prometheus.GaugeOpts{
		Name: "nftjctl_counter_packets",
		Help: "Packets recorded by each named counter",
	}, objectLabels)

	r.CounterBytes = factory.NewGaugeVec(prometheus.GaugeOpts{
		Name: "nftjctl_counter_bytes",
		Help: "Bytes recorded by each named counter",
	}, objectLabels)

	r.QuotaUsedBytes = factory.NewGaugeVec(prometheus.GaugeOpts{
		Name: "nftjctl_quota_used_bytes",
		Help: "Bytes consumed against each named quota",
	}, objectLabels)

	r.QuotaLimitBytes = factory.NewGaugeVec(prometheus.GaugeOpts{
		Name: "nftjctl_quota_limit_bytes",
		Help: "Configured threshold of each named quota",
	}, objectLabels)

	r.RulesetRules = factory.NewGauge(prometheus.GaugeOpts{
		Name: "nftjctl_ruleset_rules",
		Help: "Number of rules in the current ruleset",
	})

	r.ScrapesTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "nftjctl_scrapes_total",
		Help: "Engine scrapes performed by the collector",
	}, []string{"status"})

	r.LastScrapeUnix = factory.NewGauge(prometheus.GaugeOpts{
		Name: "nftjctl_last_scrape_timestamp_seconds",
		Help: "Unix time of the last successful scrape",
	})

	return r
}

// Handler serves this registry's metrics in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prom, promhttp.HandlerOpts{})
}
