package cmd

import (
	"fmt"
	"os"

	"github.com/nftjctl/nftjctl/internal/config"
)

// RunExport writes a starter configuration file as HCL. An empty path
// writes to stdout.
func RunExport(path string) error {
	out := config.GenerateHCL(config.Default())

	if path == "" {
		fmt.Print(string(out))
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite %s", path)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	Printer.Printf("Wrote starter config to %s\n", path)
	return nil
}
