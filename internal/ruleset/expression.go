package ruleset

import (
	"encoding/json"
	"fmt"
)

// Expression is one clause of a rule: a match, a stateful object reference,
// a verdict, or something this code treats as opaque.
type Expression struct {
	Match   *MatchExpr
	Counter *CounterExpr
	Accept  bool
	Drop    bool
	Comment *string

	Raw map[string]json.RawMessage
}

// MatchExpr is a relational match. The operands are deeply structured
// payload/meta expressions owned by the schema; they stay opaque here.
type MatchExpr struct {
	Op    string          `json:"op,omitempty"`
	Left  json.RawMessage `json:"left"`
	Right json.RawMessage `json:"right"`
}

// CounterExpr is a packet counter attached to a rule. In listings it carries
// the current values; in command documents it is usually the null literal
// ("count everything, starting at zero"). Null marks that form.
type CounterExpr struct {
	Packets uint64 `json:"packets"`
	Bytes   uint64 `json:"bytes"`
	Null    bool   `json:"-"`
}

// NullCounter returns the counter expression used when building rules:
// {"counter": null}.
func NullCounter() Expression {
	return Expression{Counter: &CounterExpr{Null: true}}
}

// MarshalJSON encodes the populated variant as a single-key object.
func (e Expression) MarshalJSON() ([]byte, error) {
	switch {
	case e.Match != nil:
		return tagged("match", e.Match)
	case e.Counter != nil:
		if e.Counter.Null {
			return tagged("counter", nil)
		}
		return tagged("counter", e.Counter)
	case e.Accept:
		return tagged("accept", nil)
	case e.Drop:
		return tagged("drop", nil)
	case e.Comment != nil:
		return tagged("comment", e.Comment)
	case len(e.Raw) > 0:
		return marshalRaw(e.Raw)
	}
	return nil, fmt.Errorf("ruleset: expression has no populated variant")
}

// UnmarshalJSON decodes one expression, stashing unrecognized tags in Raw.
// A null counter payload still counts as a counter expression: the tag's
// presence is what matters, not its value.
func (e *Expression) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if len(m) == 0 {
		return fmt.Errorf("ruleset: empty expression")
	}
	for tag, raw := range m {
		var err error
		switch tag {
		case "match":
			e.Match = &MatchExpr{}
			err = json.Unmarshal(raw, e.Match)
		case "counter":
			e.Counter = &CounterExpr{}
			if isJSONNull(raw) {
				e.Counter.Null = true
			} else {
				err = json.Unmarshal(raw, e.Counter)
			}
		case "accept":
			e.Accept = true
		case "drop":
			e.Drop = true
		case "comment":
			e.Comment = new(string)
			err = json.Unmarshal(raw, e.Comment)
		default:
			if e.Raw == nil {
				e.Raw = make(map[string]json.RawMessage, 1)
			}
			e.Raw[tag] = raw
		}
		if err != nil {
			return fmt.Errorf("ruleset: decode %q expression: %w", tag, err)
		}
	}
	return nil
}
