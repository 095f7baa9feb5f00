// Package engine abstracts the external rule-management engine behind an
// injected capability, so document filtering and building can be tested
// without a real system binding. The production implementation shells out
// to the nft binary and speaks the libnftables JSON interface.
package engine

import (
	"fmt"

	"github.com/nftjctl/nftjctl/internal/ruleset"
)

// ListTarget names what a listing read asks the engine for.
type ListTarget string

const (
	ListRuleset  ListTarget = "ruleset"
	ListCounters ListTarget = "counters"
	ListQuotas   ListTarget = "quotas"
)

// Engine is the capability every workflow is written against.
//
// Validate checks a command document against the engine's schema without
// executing it. Submit executes it; any document the engine prints back is
// returned. List reads current kernel state as a decoded document.
type Engine interface {
	Validate(doc *ruleset.Document) error
	Submit(doc *ruleset.Document) (*ruleset.Document, error)
	List(target ListTarget) (*ruleset.Document, error)
}

// SchemaError reports a document the engine's validator rejected.
type SchemaError struct {
	Output string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("schema validation failed: %v: %s", e.Err, e.Output)
	}
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// EngineError reports a failed engine operation, carrying whatever error
// text the engine produced.
type EngineError struct {
	Op     string
	Output string
	Err    error
}

func (e *EngineError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("engine %s failed: %v: %s", e.Op, e.Err, e.Output)
	}
	return fmt.Sprintf("engine %s failed: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// ErrEmptyOutput is returned when a read operation produced no output.
// Empty output is an error only for reads; for writes it is the expected
// case and any output at all is surfaced as a warning instead. The original
// scripts were inconsistent here (clean exit for some commands, failure for
// others); this is the one policy used everywhere.
var ErrEmptyOutput = fmt.Errorf("engine produced no output")
