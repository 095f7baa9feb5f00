// Package prune implements the search-and-delete workflow: list the
// current ruleset, select rules by predicate, and submit one command
// document deleting every match by handle.
package prune

import (
	"github.com/nftjctl/nftjctl/internal/engine"
	"github.com/nftjctl/nftjctl/internal/logging"
	"github.com/nftjctl/nftjctl/internal/ruleset"
)

// Pruner runs the workflow against an injected engine.
type Pruner struct {
	engine engine.Engine
	logger *logging.Logger

	// SkipEmpty suppresses the submit when nothing matched. The empty
	// delete document is still schema-valid, so the default is to submit
	// it anyway; set this to avoid a pointless engine round trip.
	SkipEmpty bool
}

// Result reports what a prune run did.
type Result struct {
	// Selectors are the rules acted on, in document order.
	Selectors []ruleset.RuleSelector
	// Submitted is false only when SkipEmpty short-circuited the run.
	Submitted bool
}

// New creates a Pruner. A nil logger gets the default.
func New(eng engine.Engine, logger *logging.Logger) *Pruner {
	if logger == nil {
		logger = logging.Default()
	}
	return &Pruner{
		engine: eng,
		logger: logger.WithComponent("prune"),
	}
}

// Prune lists the ruleset, selects rules with pred, and deletes them.
// The delete document is validated before submission; both failures are
// the engine's to describe, this layer only reports them.
func (p *Pruner) Prune(pred ruleset.Predicate) (*Result, error) {
	doc, err := p.engine.List(engine.ListRuleset)
	if err != nil {
		return nil, err
	}

	selectors := ruleset.FindMatchingRules(doc, pred)
	p.logger.Debug("scan finished", "rules", len(doc.Rules()), "matched", len(selectors))

	if len(selectors) == 0 && p.SkipEmpty {
		p.logger.Info("no rules matched, nothing to delete")
		return &Result{Submitted: false}, nil
	}

	cmd := ruleset.BuildDeleteCommand(selectors)
	if err := p.engine.Validate(cmd); err != nil {
		return nil, err
	}
	if _, err := p.engine.Submit(cmd); err != nil {
		return nil, err
	}

	for _, sel := range selectors {
		p.logger.Info("deleted rule",
			"family", sel.Family, "table", sel.Table, "chain", sel.Chain, "handle", sel.Handle)
	}
	return &Result{Selectors: selectors, Submitted: true}, nil
}

// PruneCounters runs Prune with the counter predicate: every rule whose
// expressions include a counter is deleted.
func (p *Pruner) PruneCounters() (*Result, error) {
	return p.Prune(ruleset.HasCounter)
}
