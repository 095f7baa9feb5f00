package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nftjctl/nftjctl/internal/engine"
	"github.com/nftjctl/nftjctl/internal/ruleset"
)

func TestCounters(t *testing.T) {
	listing := `{"nftables":[
		{"metainfo":{"json_schema_version":1}},
		{"counter":{"family":"ip","table":"mytable","name":"mycounter","handle":1,"packets":0,"bytes":0}},
		{"counter":{"family":"inet","table":"filter","name":"ssh_hits","handle":2,"packets":150,"bytes":12500}}
	]}`

	runner := new(engine.MockCommandRunner)
	runner.On("Output", "nft", "-j", "-a", "-n", "list", "counters").Return([]byte(listing), nil)

	counters, err := Counters(engine.NewNFT(runner, engine.DefaultOptions(), nil))
	require.NoError(t, err)
	require.Len(t, counters, 2)
	assert.Equal(t, "mycounter", counters[0].Name)
	assert.Equal(t, uint64(12500), counters[1].Bytes)
}

func TestQuotas(t *testing.T) {
	listing := `{"nftables":[
		{"metainfo":{"json_schema_version":1}},
		{"quota":{"family":"ip","table":"mytable","name":"myquota","handle":3,"bytes":26214400,"used":1024,"inv":false}}
	]}`

	runner := new(engine.MockCommandRunner)
	runner.On("Output", "nft", "-j", "-a", "-n", "list", "quotas").Return([]byte(listing), nil)

	quotas, err := Quotas(engine.NewNFT(runner, engine.DefaultOptions(), nil))
	require.NoError(t, err)
	require.Len(t, quotas, 1)
	assert.Equal(t, uint64(1024), quotas[0].Used)
}

func TestFormatCounter(t *testing.T) {
	c := &ruleset.Counter{Family: "ip", Table: "mytable", Name: "mycounter", Packets: 0, Bytes: 0}
	assert.Equal(t, `Counter "mycounter" in table ip mytable: packets 0 bytes 0`, FormatCounter(c))
}

func TestFormatQuota(t *testing.T) {
	q := &ruleset.Quota{Family: "ip", Table: "mytable", Name: "myquota", Bytes: 26214400, Used: 0, Inv: false}
	assert.Equal(t, `Quota "myquota" in table ip mytable: used 0 out of 26214400 bytes (inv: false)`, FormatQuota(q))
}
