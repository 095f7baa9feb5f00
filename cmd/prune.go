package cmd

import (
	"github.com/nftjctl/nftjctl/internal/engine"
	"github.com/nftjctl/nftjctl/internal/prune"
	"github.com/nftjctl/nftjctl/internal/ruleset"
)

// RunPrune deletes every rule whose expressions include a counter. A dry
// run lists what would be deleted without submitting anything.
func RunPrune(configFile string, dryRun, skipEmpty bool) error {
	app, err := setup(configFile)
	if err != nil {
		return err
	}
	defer app.Close()

	if dryRun {
		doc, err := app.Engine.List(engine.ListRuleset)
		if err != nil {
			return err
		}
		selectors := ruleset.FindMatchingRules(doc, ruleset.HasCounter)
		if len(selectors) == 0 {
			Printer.Println("No rules with counters found.")
			return nil
		}
		for _, sel := range selectors {
			Printer.Printf("Would delete rule %s %s %s handle %d\n",
				sel.Family, sel.Table, sel.Chain, sel.Handle)
		}
		return nil
	}

	pruner := prune.New(app.Engine, app.Logger)
	pruner.SkipEmpty = skipEmpty

	result, err := pruner.PruneCounters()
	if err != nil {
		app.record("prune", nil, err)
		return err
	}
	app.record("prune", ruleset.BuildDeleteCommand(result.Selectors), nil)

	if !result.Submitted {
		Printer.Println("No rules with counters found, nothing submitted.")
		return nil
	}
	for _, sel := range result.Selectors {
		Printer.Printf("Deleted rule %s %s %s handle %d\n",
			sel.Family, sel.Table, sel.Chain, sel.Handle)
	}
	Printer.Printf("Deleted %d rules\n", len(result.Selectors))
	return nil
}
