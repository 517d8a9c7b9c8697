// Package location wraps the locator service: place, address and street
// autocomplete, and free-text address to UPRN matching.
package location

import (
	"context"
	"time"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/registry"
	"github.com/Vepler/http-sdk/pkg/transport"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// Service issues locator requests through a registry.
type Service struct {
	reg registry.Provider
}

// New returns a Service bound to reg.
func New(reg registry.Provider) *Service {
	return &Service{reg: reg}
}

func (s *Service) client() (transport.Client, error) {
	return s.reg.Client(registry.Locator)
}

// Suggestion is one autocomplete result.
type Suggestion map[string]any

// AutocompleteResponse lists suggestions.
type AutocompleteResponse struct {
	Success bool         `json:"success"`
	Result  []Suggestion `json:"result"`
}

// AutocompleteParams is a prefix search over places.
type AutocompleteParams struct {
	Q string
	// Limit defaults to 10.
	Limit  *int
	Offset int
}

// Autocomplete suggests places matching Q.
func (s *Service) Autocomplete(ctx context.Context, p AutocompleteParams) (*AutocompleteResponse, error) {
	if err := validate.Required("q", p.Q != ""); err != nil {
		return nil, err
	}
	q := params.New().
		Set("q", p.Q).
		Int("limit", params.Ptr(params.Deref(p.Limit, 10))).
		Int("offset", &p.Offset)
	return s.autocomplete(ctx, "/autocomplete", q)
}

// AddressParams is a prefix search over addresses. Unset fields are omitted.
type AddressParams struct {
	Q                string
	Limit            *int
	Offset           *int
	PostcodePriority *bool
	StreetPriority   *bool
}

// AutocompleteAddress suggests full addresses matching Q.
func (s *Service) AutocompleteAddress(ctx context.Context, p AddressParams) (*AutocompleteResponse, error) {
	if err := validate.Required("q", p.Q != ""); err != nil {
		return nil, err
	}
	q := params.New().
		Set("q", p.Q).
		Int("limit", p.Limit).
		Int("offset", p.Offset).
		Bool("postcodePriority", p.PostcodePriority).
		Bool("streetPriority", p.StreetPriority)
	return s.autocomplete(ctx, "/address/autocomplete", q)
}

// StreetParams is a prefix search over street names.
type StreetParams struct {
	Q string
	// Limit defaults to 10.
	Limit            *int
	Offset           int
	PostcodePriority *bool
	// StreetPriority defaults to true.
	StreetPriority *bool
	Town           string
	Locality       string
}

// AutocompleteStreet suggests streets matching Q, optionally within a town or locality.
func (s *Service) AutocompleteStreet(ctx context.Context, p StreetParams) (*AutocompleteResponse, error) {
	if err := validate.Required("q", p.Q != ""); err != nil {
		return nil, err
	}
	q := params.New().
		Set("q", p.Q).
		Int("limit", params.Ptr(params.Deref(p.Limit, 10))).
		Int("offset", &p.Offset).
		Bool("postcodePriority", p.PostcodePriority).
		Bool("streetPriority", params.Ptr(params.Deref(p.StreetPriority, true))).
		String("town", p.Town).
		String("locality", p.Locality)
	return s.autocomplete(ctx, "/streets/autocomplete", q)
}

func (s *Service) autocomplete(ctx context.Context, path string, q *params.Values) (*AutocompleteResponse, error) {
	c, err := s.client()
	if err != nil {
		return nil, err
	}
	var out AutocompleteResponse
	if err := c.Query(ctx, path, q.URLValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Address lookup defaults and limits.
const (
	DefaultConfidenceThreshold = 70
	DefaultFallbackThreshold   = 60
	DefaultMaxResults          = 5
	DefaultLookupTimeout       = 120 * time.Second
	// MinLookupRequestTimeout is the floor applied to the HTTP deadline of a lookup.
	MinLookupRequestTimeout = 150 * time.Second
)

// LookupOptions tune address matching. Zero values take the defaults above.
type LookupOptions struct {
	// ConfidenceThreshold in [0, 100].
	ConfidenceThreshold int
	// FallbackThreshold in [0, 100].
	FallbackThreshold int
	// MaxResults in [1, 10].
	MaxResults int
	// DisableFallback turns off postcode fallback matching.
	DisableFallback          bool
	IncludeProcessingDetails bool
	// Timeout is the server-side processing budget, in [10s, 300s].
	Timeout time.Duration
}

type lookupRequest struct {
	AddressString string        `json:"addressString"`
	Options       lookupOptions `json:"options"`
}

type lookupOptions struct {
	ConfidenceThreshold      int   `json:"confidenceThreshold"`
	FallbackThreshold        int   `json:"fallbackThreshold"`
	MaxResults               int   `json:"maxResults"`
	EnableFallback           bool  `json:"enableFallback"`
	IncludeProcessingDetails bool  `json:"includeProcessingDetails"`
	Timeout                  int64 `json:"timeout"`
}

// Match is one address matched to a UPRN.
type Match struct {
	UPRN            string  `json:"uprn"`
	Address         string  `json:"address"`
	Confidence      float64 `json:"confidence"`
	Source          string  `json:"source"`
	OriginalAddress string  `json:"originalAddress"`
}

// ProcessingStep describes one stage of the matching pipeline.
type ProcessingStep struct {
	Step            string  `json:"step"`
	Status          string  `json:"status"`
	Confidence      float64 `json:"confidence"`
	ExecutionTimeMs float64 `json:"executionTimeMs"`
	Details         string  `json:"details,omitempty"`
}

// LookupResponse is the result of an address lookup.
type LookupResponse struct {
	Success    bool `json:"success"`
	StatusCode int  `json:"statusCode"`
	Result     *struct {
		Matches    []Match `json:"matches"`
		Confidence float64 `json:"confidence"`
		Metadata   struct {
			AddressCount    int              `json:"addressCount"`
			ExecutionTimeMs float64          `json:"executionTimeMs"`
			Pattern         string           `json:"pattern"`
			FastPath        bool             `json:"fastPath,omitempty"`
			ProcessingSteps []ProcessingStep `json:"processingSteps,omitempty"`
		} `json:"metadata"`
	} `json:"result,omitempty"`
	Error *struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		Retryable bool   `json:"retryable"`
	} `json:"error,omitempty"`
}

func (o LookupOptions) resolve() lookupOptions {
	out := lookupOptions{
		ConfidenceThreshold:      o.ConfidenceThreshold,
		FallbackThreshold:        o.FallbackThreshold,
		MaxResults:               o.MaxResults,
		EnableFallback:           !o.DisableFallback,
		IncludeProcessingDetails: o.IncludeProcessingDetails,
		Timeout:                  o.Timeout.Milliseconds(),
	}
	if out.ConfidenceThreshold == 0 {
		out.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if out.FallbackThreshold == 0 {
		out.FallbackThreshold = DefaultFallbackThreshold
	}
	if out.MaxResults == 0 {
		out.MaxResults = DefaultMaxResults
	}
	if out.Timeout == 0 {
		out.Timeout = DefaultLookupTimeout.Milliseconds()
	}
	return out
}

// Lookup matches a free-text address, which may describe several properties,
// to UPRNs. The request deadline is at least MinLookupRequestTimeout
// regardless of the registry timeout.
func (s *Service) Lookup(ctx context.Context, address string, opts LookupOptions) (*LookupResponse, error) {
	resolved := opts.resolve()
	timeoutMs := resolved.Timeout
	if err := validate.First(
		validate.Required("addressString", address != ""),
		validate.Length("addressString", address, 5, 500),
		validate.Range("confidenceThreshold", &resolved.ConfidenceThreshold, 0, 100),
		validate.Range("fallbackThreshold", &resolved.FallbackThreshold, 0, 100),
		validate.Range("maxResults", &resolved.MaxResults, 1, 10),
		validate.Range("timeout", &timeoutMs, 10000, 300000),
	); err != nil {
		return nil, err
	}

	c, err := s.client()
	if err != nil {
		return nil, err
	}

	deadline := max(time.Duration(resolved.Timeout)*time.Millisecond, MinLookupRequestTimeout)
	body := lookupRequest{AddressString: address, Options: resolved}

	var out LookupResponse
	if err := c.Post(ctx, "/address/enhanced-lookup", body, &out, transport.WithTimeout(deadline)); err != nil {
		return nil, err
	}
	return &out, nil
}
