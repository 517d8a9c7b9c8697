package main

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vepler/http-sdk/internal/sdktest"
	"github.com/Vepler/http-sdk/pkg/location"
)

func TestReadAddresses(t *testing.T) {
	in := strings.NewReader(`# header comment
10 Downing Street, London SW1A 2AA

  221B Baker Street, London NW1 6XE  
`)
	got, err := readAddresses(in)
	require.NoError(t, err)
	assert.Equal(t, []addressInput{
		{Line: 2, Address: "10 Downing Street, London SW1A 2AA"},
		{Line: 4, Address: "221B Baker Street, London NW1 6XE"},
	}, got)
}

func TestReadAddresses_NormalizesAndDecodes(t *testing.T) {
	// "Caf\xe9" is windows-1252 for "Café".
	r, err := charsetReader(strings.NewReader("1 Caf\xe9 Row, Leeds\n"), "windows-1252")
	require.NoError(t, err)
	got, err := readAddresses(r)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1 Caf\u00e9 Row, Leeds", got[0].Address)

	// A decomposed e + combining acute is composed to the single code point.
	got, err = readAddresses(strings.NewReader("2 Cafe\u0301 Row, Leeds\n"))
	require.NoError(t, err)
	assert.Equal(t, "2 Caf\u00e9 Row, Leeds", got[0].Address)

	_, err = charsetReader(strings.NewReader(""), "klingon")
	assert.Error(t, err)
}

func TestLookupBatch(t *testing.T) {
	var inflight, peak atomic.Int32
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inflight.Add(1)
		defer inflight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}

		addr := sdktest.DecodeBody(t, r)["addressString"].(string)
		switch {
		case strings.Contains(addr, "Nowhere"):
			w.WriteHeader(http.StatusUnprocessableEntity)
		case strings.Contains(addr, "Vague"):
			sdktest.JSON(t, w, map[string]any{
				"success": false, "statusCode": 200,
				"error": map[string]any{"code": "LOW_CONFIDENCE", "message": "no confident match"},
			})
		default:
			sdktest.JSON(t, w, map[string]any{
				"success": true, "statusCode": 200,
				"result": map[string]any{
					"matches":    []map[string]any{{"uprn": "100023336956", "confidence": 97}},
					"confidence": 97,
				},
			})
		}
	}))

	inputs := []addressInput{
		{Line: 1, Address: "10 Downing Street, London"},
		{Line: 2, Address: "1 Nowhere Lane, Atlantis"},
		{Line: 3, Address: "Vague Place, Somewhere"},
		{Line: 5, Address: "221B Baker Street, London"},
	}
	results, err := lookupBatch(context.Background(), location.New(reg), inputs, 2, location.LookupOptions{})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, 1, results[0].Line)
	require.Len(t, results[0].Matches, 1)
	assert.Equal(t, "100023336956", results[0].Matches[0].UPRN)
	assert.InDelta(t, 97, results[0].Confidence, 0.001)

	assert.Contains(t, results[1].Error, "422")
	assert.Empty(t, results[1].Matches)

	assert.Equal(t, "no confident match", results[2].Error)

	assert.Equal(t, 5, results[3].Line)
	assert.Empty(t, results[3].Error)

	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestLookupBatch_Cancelled(t *testing.T) {
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := lookupBatch(ctx, location.New(reg), []addressInput{{Line: 1, Address: "10 Downing Street"}}, 1, location.LookupOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
