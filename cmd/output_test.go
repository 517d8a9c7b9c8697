package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vepler/http-sdk/internal/config"
)

type outputSample struct {
	LocationID string  `json:"locationId"`
	Band       string  `json:"band,omitempty"`
	Score      float64 `json:"score"`
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, config.OutputJSON, outputSample{LocationID: "L1", Score: 1.5}))
	assert.JSONEq(t, `{"locationId":"L1","score":1.5}`, buf.String())
	assert.Contains(t, buf.String(), "\n  \"locationId\"")
}

func TestWriteOutput_YAMLUsesJSONNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, config.OutputYAML, []outputSample{{LocationID: "L1", Band: "C", Score: 2}}))
	assert.Equal(t, "- band: C\n  locationId: L1\n  score: 2\n", buf.String())
}
