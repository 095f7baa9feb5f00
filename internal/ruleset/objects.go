package ruleset

import "encoding/json"

// SchemaVersion is the libnftables JSON schema revision this package was
// written against. Emitted in every command document and checked against
// the metainfo of decoded listings.
const SchemaVersion = 1

// Metainfo is the schema version marker carried by listings and commands.
type Metainfo struct {
	Version           string `json:"version,omitempty"`
	ReleaseName       string `json:"release_name,omitempty"`
	JSONSchemaVersion int    `json:"json_schema_version"`
}

// Table describes an nftables table.
type Table struct {
	Family string `json:"family"`
	Name   string `json:"name"`
	Handle uint64 `json:"handle,omitempty"`
}

// Chain describes an nftables chain. Base-chain attributes (type, hook,
// priority, policy) are optional; regular chains omit them.
type Chain struct {
	Family   string `json:"family"`
	Table    string `json:"table"`
	Name     string `json:"name"`
	Handle   uint64 `json:"handle,omitempty"`
	Type     string `json:"type,omitempty"`
	Hook     string `json:"hook,omitempty"`
	Priority *int   `json:"prio,omitempty"`
	Policy   string `json:"policy,omitempty"`
}

// Rule describes one rule. A rule handle is only meaningful relative to its
// (family, table, chain) triple. In listings taken with handle output
// enabled, Handle is the kernel-assigned identifier used for deletion.
type Rule struct {
	Family  string       `json:"family"`
	Table   string       `json:"table"`
	Chain   string       `json:"chain"`
	Handle  uint64       `json:"handle,omitempty"`
	Expr    []Expression `json:"expr,omitempty"`
	Comment string       `json:"comment,omitempty"`
}

// Counter is a named stateful counter object.
type Counter struct {
	Family  string `json:"family"`
	Table   string `json:"table"`
	Name    string `json:"name"`
	Handle  uint64 `json:"handle,omitempty"`
	Packets uint64 `json:"packets"`
	Bytes   uint64 `json:"bytes"`
}

// Quota is a named quota object. Inv reports whether the quota is inverted
// (matches once the threshold is exceeded).
type Quota struct {
	Family string `json:"family"`
	Table  string `json:"table"`
	Name   string `json:"name"`
	Handle uint64 `json:"handle,omitempty"`
	Bytes  uint64 `json:"bytes"`
	Used   uint64 `json:"used"`
	Inv    bool   `json:"inv"`
}

// RuleSelector addresses exactly one rule for deletion. All four fields are
// always carried together; a handle alone is not a valid deletion target.
type RuleSelector struct {
	Family string `json:"family"`
	Table  string `json:"table"`
	Chain  string `json:"chain"`
	Handle uint64 `json:"handle"`
}

// Rule returns the selector as a rule object suitable for a delete command.
func (s RuleSelector) Rule() *Rule {
	return &Rule{
		Family: s.Family,
		Table:  s.Table,
		Chain:  s.Chain,
		Handle: s.Handle,
	}
}

// SelectorOf projects a rule down to its deletion selector.
func SelectorOf(r *Rule) RuleSelector {
	return RuleSelector{
		Family: r.Family,
		Table:  r.Table,
		Chain:  r.Chain,
		Handle: r.Handle,
	}
}

// tagged serializes a single-key union object {"<tag>": <payload>}.
func tagged(tag string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	key, err := json.Marshal(tag)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(key)+len(body)+3)
	out = append(out, '{')
	out = append(out, key...)
	out = append(out, ':')
	out = append(out, body...)
	out = append(out, '}')
	return out, nil
}

// isJSONNull reports whether raw is the JSON null literal.
func isJSONNull(raw json.RawMessage) bool {
	return len(raw) == 4 && string(raw) == "null"
}
