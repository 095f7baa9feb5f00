package cmd

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/nftjctl/nftjctl/internal/ruleset"
)

// exampleRuleset is a small demonstration ruleset: one inet table with
// an input chain accepting DNS, SSH (counted), and HTTP.
//
//go:embed example_ruleset.json
var exampleRuleset []byte

// RunLoad validates and submits a ruleset file. With example set, the
// embedded demonstration ruleset is used instead of a file. A dry run
// stops after validation.
func RunLoad(configFile, rulesetPath string, example, dryRun bool) error {
	app, err := setup(configFile)
	if err != nil {
		return err
	}
	defer app.Close()

	var doc *ruleset.Document
	if example || rulesetPath == "" {
		doc = new(ruleset.Document)
		if err := json.Unmarshal(exampleRuleset, doc); err != nil {
			return fmt.Errorf("decode embedded ruleset: %w", err)
		}
		Printer.Println("Using the embedded demonstration ruleset.")
	} else {
		doc, err = readDocument(rulesetPath)
		if err != nil {
			return err
		}
	}

	if err := app.Engine.Validate(doc); err != nil {
		return fmt.Errorf("ruleset rejected: %w", err)
	}
	if dryRun {
		Printer.Printf("Ruleset valid (%d statements), not applied (dry run)\n", len(doc.Statements))
		return nil
	}

	_, err = app.Engine.Submit(doc)
	app.record("load", doc, err)
	if err != nil {
		return err
	}

	Printer.Printf("Applied %d statements (%d rules)\n", len(doc.Statements), len(doc.Rules()))
	return nil
}
