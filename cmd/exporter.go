package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nftjctl/nftjctl/internal/metrics"
)

// RunExporter serves counter and quota readings to Prometheus until
// interrupted.
func RunExporter(configFile string) error {
	app, err := setup(configFile)
	if err != nil {
		return err
	}
	defer app.Close()

	reg := metrics.Get()
	interval := time.Duration(app.Config.Exporter.IntervalSeconds) * time.Second
	collector := metrics.NewCollector(reg, app.Engine, app.Logger, nil, interval)

	// Prime the registry so the first scrape is not empty.
	if err := collector.CollectOnce(); err != nil {
		app.Logger.Warn("initial scrape failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go collector.Run(ctx)

	exporter := metrics.NewExporter(reg, app.Logger)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		exporter.Shutdown(shutdownCtx)
	}()

	return exporter.ListenAndServe(app.Config.Exporter.Listen)
}
