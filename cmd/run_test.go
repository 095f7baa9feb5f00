package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nftjctl/nftjctl/internal/ruleset"
)

func TestReadDocumentJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	data := `{"nftables":[
		{"metainfo":{"json_schema_version":1}},
		{"add":{"table":{"family":"inet","name":"mytable"}}}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	doc, err := readDocument(path)
	require.NoError(t, err)
	require.Len(t, doc.Statements, 2)
	assert.Equal(t, "mytable", doc.Statements[1].Add.Table.Name)
}

func TestReadDocumentYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := `
nftables:
  - metainfo:
      json_schema_version: 1
  - add:
      rule:
        family: inet
        table: mytable
        chain: mychain
        expr:
          - counter: null
          - accept: null
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	doc, err := readDocument(path)
	require.NoError(t, err)
	require.Len(t, doc.Statements, 2)

	rule := doc.Statements[1].Add.Rule
	require.NotNil(t, rule)
	assert.Equal(t, "mychain", rule.Chain)
	require.Len(t, rule.Expr, 2)
	require.NotNil(t, rule.Expr[0].Counter)
	assert.True(t, rule.Expr[0].Counter.Null)
	assert.True(t, rule.Expr[1].Accept)
}

func TestReadDocumentMissingFile(t *testing.T) {
	_, err := readDocument(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestEmbeddedExampleDecodes(t *testing.T) {
	var doc ruleset.Document
	require.NoError(t, json.Unmarshal(exampleRuleset, &doc))

	// flush ruleset, one table, one chain, three rules, plus metainfo.
	require.Len(t, doc.Statements, 7)
	assert.True(t, doc.Statements[1].Flush.RulesetTarget)
	assert.Equal(t, "mytable", doc.Statements[2].Add.Table.Name)
	assert.Equal(t, "input", doc.Statements[3].Add.Chain.Hook)

	// The SSH rule carries a null counter expression.
	ssh := doc.Statements[5].Add.Rule
	require.NotNil(t, ssh)
	var hasCounter bool
	for _, e := range ssh.Expr {
		if e.Counter != nil {
			hasCounter = true
			assert.True(t, e.Counter.Null)
		}
	}
	assert.True(t, hasCounter)

	// Round-trip: the wire form survives decode and re-encode.
	out, err := json.Marshal(&doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(exampleRuleset), string(out))
}
