package cmd

import (
	"github.com/nftjctl/nftjctl/internal/objects"
)

// RunCounters prints every named counter and quota in the system.
func RunCounters(configFile string) error {
	app, err := setup(configFile)
	if err != nil {
		return err
	}
	defer app.Close()

	counters, err := objects.Counters(app.Engine)
	if err != nil {
		return err
	}
	for _, c := range counters {
		Printer.Println(objects.FormatCounter(c))
	}

	quotas, err := objects.Quotas(app.Engine)
	if err != nil {
		return err
	}
	for _, q := range quotas {
		Printer.Println(objects.FormatQuota(q))
	}

	if len(counters) == 0 && len(quotas) == 0 {
		Printer.Println("No named counters or quotas configured.")
	}
	return nil
}
