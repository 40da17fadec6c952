package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemID_UnmarshalNumberAndString(t *testing.T) {
	var line struct {
		A ItemID `json:"a"`
		B ItemID `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 4, "b": "ai-trial"}`), &line))

	assert.Equal(t, ItemID("4"), line.A)
	assert.Equal(t, ItemID("ai-trial"), line.B)
}

func TestItemID_MarshalKeepsWireShape(t *testing.T) {
	out, err := json.Marshal([]ItemID{IntID(4), "ai-basic", "007"})
	require.NoError(t, err)
	assert.JSONEq(t, `[4, "ai-basic", "007"]`, string(out))
}

func TestItemID_RejectsFractions(t *testing.T) {
	var id ItemID
	err := json.Unmarshal([]byte(`4.5`), &id)
	assert.Error(t, err)
}
