package cmd

import (
	"fmt"

	"github.com/nftjctl/nftjctl/internal/brand"
)

// RunCheck validates a ruleset file against the engine's check mode
// without touching kernel state.
func RunCheck(configFile, rulesetPath string) error {
	if rulesetPath == "" {
		return fmt.Errorf("usage: %s check <ruleset-file>", brand.BinaryName)
	}

	app, err := setup(configFile)
	if err != nil {
		return err
	}
	defer app.Close()

	doc, err := readDocument(rulesetPath)
	if err != nil {
		return err
	}

	if err := app.Engine.Validate(doc); err != nil {
		return fmt.Errorf("ruleset invalid: %w", err)
	}

	Printer.Printf("Ruleset valid: %d statements, %d rules\n",
		len(doc.Statements), len(doc.Rules()))
	if version, tooNew := doc.SchemaTooNew(); tooNew {
		Printer.Printf("Warning: file declares JSON schema version %d, newer than supported\n", version)
	}
	return nil
}
