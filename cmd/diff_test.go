package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nftjctl/nftjctl/internal/ruleset"
)

func mustDecode(t *testing.T, data string) *ruleset.Document {
	t.Helper()
	var doc ruleset.Document
	require.NoError(t, json.Unmarshal([]byte(data), &doc))
	return &doc
}

func TestDiffTextEqualAcrossVolatileFields(t *testing.T) {
	// A command file of add statements.
	file := mustDecode(t, `{"nftables":[
		{"metainfo":{"json_schema_version":1}},
		{"add":{"table":{"family":"inet","name":"mytable"}}},
		{"add":{"rule":{"family":"inet","table":"mytable","chain":"mychain",
			"expr":[{"counter":null},{"accept":null}]}}}
	]}`)

	// The listing the kernel produces for it: handles assigned, counter
	// state materialized.
	running := mustDecode(t, `{"nftables":[
		{"metainfo":{"version":"1.0.2","json_schema_version":1}},
		{"table":{"family":"inet","name":"mytable","handle":11}},
		{"rule":{"family":"inet","table":"mytable","chain":"mychain","handle":4,
			"expr":[{"counter":{"packets":120,"bytes":9000}},{"accept":null}]}}
	]}`)

	fileText, err := diffText(file)
	require.NoError(t, err)
	runningText, err := diffText(running)
	require.NoError(t, err)

	assert.Equal(t, fileText, runningText)
}

func TestDiffTextDetectsRealDifference(t *testing.T) {
	a := mustDecode(t, `{"nftables":[
		{"rule":{"family":"inet","table":"mytable","chain":"mychain",
			"expr":[{"accept":null}]}}
	]}`)
	b := mustDecode(t, `{"nftables":[
		{"rule":{"family":"inet","table":"mytable","chain":"mychain",
			"expr":[{"drop":null}]}}
	]}`)

	aText, err := diffText(a)
	require.NoError(t, err)
	bText, err := diffText(b)
	require.NoError(t, err)

	assert.NotEqual(t, aText, bText)
}

func TestStripVolatileDropsDeleteAndFlush(t *testing.T) {
	doc := mustDecode(t, `{"nftables":[
		{"flush":{"ruleset":null}},
		{"delete":{"rule":{"family":"inet","table":"t","chain":"c","handle":9}}},
		{"chain":{"family":"inet","table":"t","name":"c","handle":3}}
	]}`)

	stripped := stripVolatile(doc)
	require.Len(t, stripped.Statements, 1)
	require.NotNil(t, stripped.Statements[0].Chain)
	assert.Zero(t, stripped.Statements[0].Chain.Handle)
}
