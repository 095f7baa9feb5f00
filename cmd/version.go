package cmd

import (
	"github.com/nftjctl/nftjctl/internal/brand"
)

// RunVersion prints build information.
func RunVersion() error {
	Printer.Printf("%s %s\n", brand.Name, brand.Version)
	Printer.Printf("  commit: %s\n", brand.GitCommit)
	Printer.Printf("  built:  %s\n", brand.BuildTime)
	return nil
}
