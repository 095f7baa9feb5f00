package ruleset

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Document is an ordered sequence of statements wrapped in the top-level
// {"nftables": [...]} object. Order mirrors kernel listing order for
// listings, and execution order for command documents.
type Document struct {
	Statements []Statement
}

type documentWire struct {
	Nftables []Statement `json:"nftables"`
}

// MarshalJSON encodes the document in the libnftables wire shape.
func (d *Document) MarshalJSON() ([]byte, error) {
	stmts := d.Statements
	if stmts == nil {
		stmts = []Statement{}
	}
	return json.Marshal(documentWire{Nftables: stmts})
}

// UnmarshalJSON decodes a libnftables document.
func (d *Document) UnmarshalJSON(data []byte) error {
	var wire documentWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	d.Statements = wire.Nftables
	return nil
}

// Metainfo returns the document's first metainfo statement, or nil.
func (d *Document) Metainfo() *Metainfo {
	for i := range d.Statements {
		if m := d.Statements[i].Metainfo; m != nil {
			return m
		}
	}
	return nil
}

// Rules returns all rule statements in document order.
func (d *Document) Rules() []*Rule {
	var rules []*Rule
	for i := range d.Statements {
		if r := d.Statements[i].Rule; r != nil {
			rules = append(rules, r)
		}
	}
	return rules
}

// Counters returns all named counter objects in document order.
func (d *Document) Counters() []*Counter {
	var counters []*Counter
	for i := range d.Statements {
		if c := d.Statements[i].Counter; c != nil {
			counters = append(counters, c)
		}
	}
	return counters
}

// Quotas returns all named quota objects in document order.
func (d *Document) Quotas() []*Quota {
	var quotas []*Quota
	for i := range d.Statements {
		if q := d.Statements[i].Quota; q != nil {
			quotas = append(quotas, q)
		}
	}
	return quotas
}

// SchemaTooNew reports the declared schema version and whether it is newer
// than what this package understands. Callers should warn and proceed on a
// newer version, never hard-fail.
func (d *Document) SchemaTooNew() (version int, tooNew bool) {
	m := d.Metainfo()
	if m == nil {
		return 0, false
	}
	return m.JSONSchemaVersion, m.JSONSchemaVersion > SchemaVersion
}

// Statement is one entry of a document: a tagged union with exactly one
// populated variant. Listing tags (metainfo, table, chain, rule, counter,
// quota) and command tags (add, delete, flush) are recognized; anything
// else lands in Raw and round-trips untouched.
type Statement struct {
	Metainfo *Metainfo
	Table    *Table
	Chain    *Chain
	Rule     *Rule
	Counter  *Counter
	Quota    *Quota
	Add      *Command
	Delete   *Command
	Flush    *Command

	// Raw holds unrecognized tags, keyed by tag name.
	Raw map[string]json.RawMessage
}

// MarshalJSON encodes the populated variant as a single-key object.
func (s Statement) MarshalJSON() ([]byte, error) {
	switch {
	case s.Metainfo != nil:
		return tagged("metainfo", s.Metainfo)
	case s.Table != nil:
		return tagged("table", s.Table)
	case s.Chain != nil:
		return tagged("chain", s.Chain)
	case s.Rule != nil:
		return tagged("rule", s.Rule)
	case s.Counter != nil:
		return tagged("counter", s.Counter)
	case s.Quota != nil:
		return tagged("quota", s.Quota)
	case s.Add != nil:
		return tagged("add", s.Add)
	case s.Delete != nil:
		return tagged("delete", s.Delete)
	case s.Flush != nil:
		return tagged("flush", s.Flush)
	case len(s.Raw) > 0:
		return marshalRaw(s.Raw)
	}
	return nil, fmt.Errorf("ruleset: statement has no populated variant")
}

// UnmarshalJSON decodes one statement, stashing unrecognized tags in Raw.
func (s *Statement) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if len(m) == 0 {
		return fmt.Errorf("ruleset: empty statement")
	}
	for tag, raw := range m {
		var err error
		switch tag {
		case "metainfo":
			s.Metainfo = &Metainfo{}
			err = json.Unmarshal(raw, s.Metainfo)
		case "table":
			s.Table = &Table{}
			err = json.Unmarshal(raw, s.Table)
		case "chain":
			s.Chain = &Chain{}
			err = json.Unmarshal(raw, s.Chain)
		case "rule":
			s.Rule = &Rule{}
			err = json.Unmarshal(raw, s.Rule)
		case "counter":
			s.Counter = &Counter{}
			err = json.Unmarshal(raw, s.Counter)
		case "quota":
			s.Quota = &Quota{}
			err = json.Unmarshal(raw, s.Quota)
		case "add":
			s.Add = &Command{}
			err = json.Unmarshal(raw, s.Add)
		case "delete":
			s.Delete = &Command{}
			err = json.Unmarshal(raw, s.Delete)
		case "flush":
			s.Flush = &Command{}
			err = json.Unmarshal(raw, s.Flush)
		default:
			if s.Raw == nil {
				s.Raw = make(map[string]json.RawMessage, 1)
			}
			s.Raw[tag] = raw
		}
		if err != nil {
			return fmt.Errorf("ruleset: decode %q statement: %w", tag, err)
		}
	}
	return nil
}

// Command is the payload of an add, delete or flush statement: again a
// single-key union naming the object kind the command applies to.
type Command struct {
	Table   *Table
	Chain   *Chain
	Rule    *Rule
	Counter *Counter
	Quota   *Quota

	// RulesetTarget marks the whole-ruleset target used by flush:
	// {"flush": {"ruleset": null}}.
	RulesetTarget bool

	Raw map[string]json.RawMessage
}

// MarshalJSON encodes the command payload as a single-key object.
func (c Command) MarshalJSON() ([]byte, error) {
	switch {
	case c.Table != nil:
		return tagged("table", c.Table)
	case c.Chain != nil:
		return tagged("chain", c.Chain)
	case c.Rule != nil:
		return tagged("rule", c.Rule)
	case c.Counter != nil:
		return tagged("counter", c.Counter)
	case c.Quota != nil:
		return tagged("quota", c.Quota)
	case c.RulesetTarget:
		return tagged("ruleset", nil)
	case len(c.Raw) > 0:
		return marshalRaw(c.Raw)
	}
	return nil, fmt.Errorf("ruleset: command has no target")
}

// UnmarshalJSON decodes one command payload.
func (c *Command) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if len(m) == 0 {
		return fmt.Errorf("ruleset: empty command")
	}
	for tag, raw := range m {
		var err error
		switch tag {
		case "table":
			c.Table = &Table{}
			err = json.Unmarshal(raw, c.Table)
		case "chain":
			c.Chain = &Chain{}
			err = json.Unmarshal(raw, c.Chain)
		case "rule":
			c.Rule = &Rule{}
			err = json.Unmarshal(raw, c.Rule)
		case "counter":
			c.Counter = &Counter{}
			err = json.Unmarshal(raw, c.Counter)
		case "quota":
			c.Quota = &Quota{}
			err = json.Unmarshal(raw, c.Quota)
		case "ruleset":
			c.RulesetTarget = true
		default:
			if c.Raw == nil {
				c.Raw = make(map[string]json.RawMessage, 1)
			}
			c.Raw[tag] = raw
		}
		if err != nil {
			return fmt.Errorf("ruleset: decode %q command: %w", tag, err)
		}
	}
	return nil
}

// marshalRaw re-emits opaque tags. Keys are sorted so output is stable.
func marshalRaw(raw map[string]json.RawMessage) ([]byte, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := []byte{'{'}
	for i, k := range keys {
		if i > 0 {
			out = append(out, ',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		out = append(out, key...)
		out = append(out, ':')
		out = append(out, raw[k]...)
	}
	return append(out, '}'), nil
}
