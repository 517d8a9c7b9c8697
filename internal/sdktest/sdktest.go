// Package sdktest wires endpoint wrappers to an in-process fake API for tests.
package sdktest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Vepler/http-sdk/pkg/registry"
)

// APIKey is the key every test registry is initialized with.
const APIKey = "test-key"

// Registry starts a server running h and returns an initialized registry whose
// services all point at it. Each service is mounted under /<service-name> so
// handlers can tell them apart by path prefix.
func Registry(t *testing.T, h http.Handler) *registry.Registry {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	host := func(name string) string { return srv.URL + "/" + name }
	r := registry.New()
	require.NoError(t, r.Initialize(registry.Config{
		APIKey:                APIKey,
		PropertyHost:          host(registry.Property),
		AreaReferenceHost:     host(registry.AreaReference),
		CrimeHost:             host(registry.Crime),
		SafetyHost:            host(registry.Safety),
		RoverHost:             host(registry.Rover),
		SchoolsHost:           host(registry.Schools),
		PlanningRegisterHost:  host(registry.PlanningRegister),
		SearchHost:            host(registry.Search),
		PropertyPredictorHost: host(registry.PropertyPredictor),
		LocatorHost:           host(registry.Locator),
		CouncilRegisterHost:   host(registry.CouncilRegister),
	}, registry.Production))
	return r
}

// Unreachable returns a registry whose handler fails the test on any request.
// Use it to assert that validation rejects a call before dispatch.
func Unreachable(t *testing.T) *registry.Registry {
	t.Helper()
	return Registry(t, http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL)
	}))
}

// JSON writes v as a 200 JSON response.
func JSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// DecodeBody decodes the request body into a generic map.
func DecodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}
