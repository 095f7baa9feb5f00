package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nftjctl/nftjctl/internal/engine"
)

// RunDump prints the running ruleset as JSON.
func RunDump(configFile string, pretty bool) error {
	app, err := setup(configFile)
	if err != nil {
		return err
	}
	defer app.Close()

	doc, err := app.Engine.List(engine.ListRuleset)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode ruleset: %w", err)
	}
	return nil
}
