package prune

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nftjctl/nftjctl/internal/engine"
	"github.com/nftjctl/nftjctl/internal/ruleset"
)

// Listing with three rules in mytable/mychain: handles 3 and 4 carry
// counters, handle 2 does not.
const pruneListing = `{"nftables":[
	{"metainfo":{"json_schema_version":1}},
	{"table":{"family":"inet","name":"mytable","handle":1}},
	{"chain":{"family":"inet","table":"mytable","name":"mychain","handle":1}},
	{"rule":{"family":"inet","table":"mytable","chain":"mychain","handle":2,
		"expr":[{"accept":null}]}},
	{"rule":{"family":"inet","table":"mytable","chain":"mychain","handle":3,
		"expr":[{"counter":{"packets":10,"bytes":840}},{"accept":null}]}},
	{"rule":{"family":"inet","table":"mytable","chain":"mychain","handle":4,
		"expr":[{"counter":{"packets":0,"bytes":0}},{"drop":null}]}}
]}`

func deletePayload(t *testing.T, handles ...uint64) string {
	t.Helper()
	selectors := make([]ruleset.RuleSelector, 0, len(handles))
	for _, h := range handles {
		selectors = append(selectors, ruleset.RuleSelector{
			Family: "inet", Table: "mytable", Chain: "mychain", Handle: h,
		})
	}
	payload, err := json.Marshal(ruleset.BuildDeleteCommand(selectors))
	require.NoError(t, err)
	return string(payload)
}

func TestPruneCounters(t *testing.T) {
	runner := new(engine.MockCommandRunner)
	runner.On("Output", "nft", "-j", "-a", "-n", "list", "ruleset").Return([]byte(pruneListing), nil)

	payload := deletePayload(t, 3, 4)
	runner.On("OutputInput", payload, "nft", "-c", "-j", "-a", "-n", "-f", "-").Return([]byte{}, nil)
	runner.On("OutputInput", payload, "nft", "-j", "-a", "-n", "-f", "-").Return([]byte{}, nil)

	pruner := New(engine.NewNFT(runner, engine.DefaultOptions(), nil), nil)
	result, err := pruner.PruneCounters()
	require.NoError(t, err)

	assert.True(t, result.Submitted)
	require.Len(t, result.Selectors, 2)
	assert.Equal(t, uint64(3), result.Selectors[0].Handle)
	assert.Equal(t, uint64(4), result.Selectors[1].Handle)
	runner.AssertExpectations(t)
}

func TestPruneNoMatchesStillSubmits(t *testing.T) {
	listing := `{"nftables":[
		{"metainfo":{"json_schema_version":1}},
		{"rule":{"family":"inet","table":"mytable","chain":"mychain","handle":2,
			"expr":[{"accept":null}]}}
	]}`

	runner := new(engine.MockCommandRunner)
	runner.On("Output", "nft", "-j", "-a", "-n", "list", "ruleset").Return([]byte(listing), nil)

	// The empty delete document still goes through validate and submit.
	payload := deletePayload(t)
	runner.On("OutputInput", payload, "nft", "-c", "-j", "-a", "-n", "-f", "-").Return([]byte{}, nil)
	runner.On("OutputInput", payload, "nft", "-j", "-a", "-n", "-f", "-").Return([]byte{}, nil)

	pruner := New(engine.NewNFT(runner, engine.DefaultOptions(), nil), nil)
	result, err := pruner.PruneCounters()
	require.NoError(t, err)
	assert.True(t, result.Submitted)
	assert.Empty(t, result.Selectors)
	runner.AssertExpectations(t)
}

func TestPruneSkipEmpty(t *testing.T) {
	listing := `{"nftables":[{"metainfo":{"json_schema_version":1}}]}`

	runner := new(engine.MockCommandRunner)
	runner.On("Output", "nft", "-j", "-a", "-n", "list", "ruleset").Return([]byte(listing), nil)

	pruner := New(engine.NewNFT(runner, engine.DefaultOptions(), nil), nil)
	pruner.SkipEmpty = true

	result, err := pruner.PruneCounters()
	require.NoError(t, err)
	assert.False(t, result.Submitted)
	assert.Empty(t, result.Selectors)
	// No validate or submit calls happened.
	runner.AssertExpectations(t)
}

func TestPruneValidationFailureStopsSubmit(t *testing.T) {
	runner := new(engine.MockCommandRunner)
	runner.On("Output", "nft", "-j", "-a", "-n", "list", "ruleset").Return([]byte(pruneListing), nil)
	runner.On("OutputInput", mock.Anything, "nft", "-c", "-j", "-a", "-n", "-f", "-").
		Return([]byte("Error: syntax error"), errors.New("exit status 1"))

	pruner := New(engine.NewNFT(runner, engine.DefaultOptions(), nil), nil)
	_, err := pruner.PruneCounters()
	require.Error(t, err)

	var schemaErr *engine.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
	runner.AssertNotCalled(t, "OutputInput", mock.Anything, "nft", "-j", "-a", "-n", "-f", "-")
}

func TestPruneListFailure(t *testing.T) {
	runner := new(engine.MockCommandRunner)
	runner.On("Output", "nft", "-j", "-a", "-n", "list", "ruleset").
		Return([]byte(nil), errors.New("exit status 1"))

	pruner := New(engine.NewNFT(runner, engine.DefaultOptions(), nil), nil)
	_, err := pruner.PruneCounters()
	assert.Error(t, err)
}

func TestPruneCustomPredicate(t *testing.T) {
	runner := new(engine.MockCommandRunner)
	runner.On("Output", "nft", "-j", "-a", "-n", "list", "ruleset").Return([]byte(pruneListing), nil)

	payload := deletePayload(t, 4)
	runner.On("OutputInput", payload, "nft", "-c", "-j", "-a", "-n", "-f", "-").Return([]byte{}, nil)
	runner.On("OutputInput", payload, "nft", "-j", "-a", "-n", "-f", "-").Return([]byte{}, nil)

	pruner := New(engine.NewNFT(runner, engine.DefaultOptions(), nil), nil)
	result, err := pruner.Prune(func(r *ruleset.Rule) bool {
		return r.Handle == 4
	})
	require.NoError(t, err)
	require.Len(t, result.Selectors, 1)
	assert.Equal(t, uint64(4), result.Selectors[0].Handle)
}
