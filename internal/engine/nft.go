package engine

import (
	"encoding/json"
	"fmt"

	"github.com/nftjctl/nftjctl/internal/logging"
	"github.com/nftjctl/nftjctl/internal/ruleset"
)

// Options mirror the libnftables output context knobs as nft CLI flags.
type Options struct {
	// NFTPath is the nft binary. Defaults to "nft" from $PATH.
	NFTPath string
	// HandleOutput adds -a so listings carry rule handles. Required by any
	// workflow that wants to delete what it finds.
	HandleOutput bool
	// NumericOutput adds -n (print addresses and services numerically).
	NumericOutput bool
	// StatelessOutput adds -s (omit counter and quota state).
	StatelessOutput bool
	// Terse adds -t (omit set contents).
	Terse bool
}

// DefaultOptions match what the listing workflows want: JSON with handles,
// numeric output, state included.
func DefaultOptions() Options {
	return Options{
		HandleOutput:  true,
		NumericOutput: true,
	}
}

func (o Options) path() string {
	if o.NFTPath != "" {
		return o.NFTPath
	}
	return "nft"
}

// flags returns the common flag set. JSON mode is not optional: every
// operation of this engine speaks the JSON interface.
func (o Options) flags() []string {
	flags := []string{"-j"}
	if o.HandleOutput {
		flags = append(flags, "-a")
	}
	if o.NumericOutput {
		flags = append(flags, "-n")
	}
	if o.StatelessOutput {
		flags = append(flags, "-s")
	}
	if o.Terse {
		flags = append(flags, "-t")
	}
	return flags
}

// NFT is the production Engine: it drives the nft binary through a
// CommandRunner. Safe for concurrent use; it holds no mutable state.
type NFT struct {
	runner CommandRunner
	opts   Options
	logger *logging.Logger
}

// NewNFT creates an engine around the given runner. A nil runner gets the
// real one; a nil logger gets the default.
func NewNFT(runner CommandRunner, opts Options, logger *logging.Logger) *NFT {
	if runner == nil {
		runner = &RealCommandRunner{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &NFT{
		runner: runner,
		opts:   opts,
		logger: logger.WithComponent("engine"),
	}
}

// Validate runs the document through nft check mode (-c) without touching
// kernel state.
func (n *NFT) Validate(doc *ruleset.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return &SchemaError{Err: fmt.Errorf("encode document: %w", err)}
	}

	args := append([]string{"-c"}, n.opts.flags()...)
	args = append(args, "-f", "-")
	if out, err := n.runner.OutputInput(string(payload), n.opts.path(), args...); err != nil {
		return &SchemaError{Output: string(out), Err: err}
	}
	return nil
}

// Submit executes the document. Output from a write is unexpected but not
// an error: it is logged as a warning and returned decoded when it parses
// as a document.
func (n *NFT) Submit(doc *ruleset.Document) (*ruleset.Document, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, &EngineError{Op: "submit", Err: fmt.Errorf("encode document: %w", err)}
	}

	args := append(n.opts.flags(), "-f", "-")
	out, err := n.runner.OutputInput(string(payload), n.opts.path(), args...)
	if err != nil {
		return nil, &EngineError{Op: "submit", Output: string(out), Err: err}
	}

	if len(out) == 0 {
		return nil, nil
	}
	n.logger.Warn("submit produced output", "output", string(out))

	var echoed ruleset.Document
	if err := json.Unmarshal(out, &echoed); err != nil {
		// Not a document; already surfaced via the warning above.
		return nil, nil
	}
	return &echoed, nil
}

// List reads current kernel state. Empty output is an error for reads.
// A listing declaring a newer schema version than this code understands
// logs a warning and proceeds.
func (n *NFT) List(target ListTarget) (*ruleset.Document, error) {
	args := append(n.opts.flags(), "list", string(target))
	out, err := n.runner.Output(n.opts.path(), args...)
	if err != nil {
		return nil, &EngineError{Op: "list " + string(target), Output: string(out), Err: err}
	}
	if len(out) == 0 {
		return nil, &EngineError{Op: "list " + string(target), Err: ErrEmptyOutput}
	}

	var doc ruleset.Document
	if err := json.Unmarshal(out, &doc); err != nil {
		return nil, &EngineError{Op: "list " + string(target), Err: fmt.Errorf("decode listing: %w", err)}
	}

	if version, tooNew := doc.SchemaTooNew(); tooNew {
		n.logger.Warn("listing declares a newer JSON schema than this build understands",
			"got", version, "supported", ruleset.SchemaVersion)
	}
	return &doc, nil
}
