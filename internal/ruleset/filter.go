package ruleset

// Predicate decides whether a rule is of interest to a scan.
type Predicate func(*Rule) bool

// HasCounter reports whether any expression of the rule is tagged "counter".
// The counter's value is irrelevant; a rule with no expressions never
// matches.
func HasCounter(r *Rule) bool {
	for i := range r.Expr {
		if r.Expr[i].Counter != nil {
			return true
		}
	}
	return false
}

// FindMatchingRules scans every statement of doc in document order and
// returns the deletion selectors of the rules satisfying pred, in the same
// relative order as they appear in the document. Statements that are not
// rules are skipped. The input document is never mutated.
func FindMatchingRules(doc *Document, pred Predicate) []RuleSelector {
	var selectors []RuleSelector
	for i := range doc.Statements {
		r := doc.Statements[i].Rule
		if r == nil {
			continue
		}
		if pred(r) {
			selectors = append(selectors, SelectorOf(r))
		}
	}
	return selectors
}

// BuildDeleteCommand produces a command document deleting each selected
// rule, in input order. The document always starts with the schema version
// metainfo, even when there is nothing to delete: an empty deletion set is
// a valid, schema-conformant command.
func BuildDeleteCommand(selectors []RuleSelector) *Document {
	doc := &Document{
		Statements: make([]Statement, 0, len(selectors)+1),
	}
	doc.Statements = append(doc.Statements, Statement{
		Metainfo: &Metainfo{JSONSchemaVersion: SchemaVersion},
	})
	for _, sel := range selectors {
		doc.Statements = append(doc.Statements, Statement{
			Delete: &Command{Rule: sel.Rule()},
		})
	}
	return doc
}
