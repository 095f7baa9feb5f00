package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/nftjctl/nftjctl/internal/engine"
	"github.com/nftjctl/nftjctl/internal/ruleset"
)

// RunDiff compares a ruleset file against the running ruleset and prints
// a unified diff of their JSON forms. A difference is reported through
// the exit status.
func RunDiff(configFile, rulesetPath string) error {
	app, err := setup(configFile)
	if err != nil {
		return err
	}
	defer app.Close()

	want, err := readDocument(rulesetPath)
	if err != nil {
		return err
	}

	got, err := app.Engine.List(engine.ListRuleset)
	if err != nil {
		return err
	}

	wantText, err := diffText(want)
	if err != nil {
		return err
	}
	gotText, err := diffText(got)
	if err != nil {
		return err
	}

	if wantText == gotText {
		Printer.Println("No changes detected.")
		return nil
	}

	Printer.Println("Ruleset file differs from running state:")
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(wantText),
		B:        difflib.SplitLines(gotText),
		FromFile: rulesetPath,
		ToFile:   "running",
		Context:  3,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	fmt.Print(text)

	return fmt.Errorf("ruleset differs")
}

// diffText renders a document as indented JSON with volatile fields
// (handles, counter state) stripped, so the comparison is fair.
func diffText(doc *ruleset.Document) (string, error) {
	stripped := stripVolatile(doc)
	out, err := json.MarshalIndent(stripped, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	return string(out) + "\n", nil
}

// stripVolatile copies the document without metainfo statements, rule
// handles, or counter readings. Command wrappers are unwrapped so a file
// of add commands compares equal to the listing it produces.
func stripVolatile(doc *ruleset.Document) *ruleset.Document {
	out := &ruleset.Document{}
	for _, st := range doc.Statements {
		st := st
		if st.Add != nil {
			st = commandStatement(st.Add)
		}
		switch {
		case st.Metainfo != nil, st.Delete != nil, st.Flush != nil:
			continue
		case st.Rule != nil:
			rule := *st.Rule
			rule.Handle = 0
			rule.Expr = stripCounterState(rule.Expr)
			out.Statements = append(out.Statements, ruleset.Statement{Rule: &rule})
		case st.Table != nil:
			table := *st.Table
			table.Handle = 0
			out.Statements = append(out.Statements, ruleset.Statement{Table: &table})
		case st.Chain != nil:
			chain := *st.Chain
			chain.Handle = 0
			out.Statements = append(out.Statements, ruleset.Statement{Chain: &chain})
		default:
			out.Statements = append(out.Statements, st)
		}
	}
	return out
}

func commandStatement(cmd *ruleset.Command) ruleset.Statement {
	return ruleset.Statement{
		Table:   cmd.Table,
		Chain:   cmd.Chain,
		Rule:    cmd.Rule,
		Counter: cmd.Counter,
		Quota:   cmd.Quota,
	}
}

func stripCounterState(exprs []ruleset.Expression) []ruleset.Expression {
	out := make([]ruleset.Expression, 0, len(exprs))
	for _, e := range exprs {
		if e.Counter != nil {
			e.Counter = ruleset.NullCounter().Counter
		}
		out = append(out, e)
	}
	return out
}
