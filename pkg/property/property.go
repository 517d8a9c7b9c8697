// Package property wraps the property service: lookups by property or
// location id and structured queries over areas and attributes.
package property

import (
	"context"
	"strings"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/registry"
	"github.com/Vepler/http-sdk/pkg/transport"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// Service issues property requests through a registry.
type Service struct {
	reg registry.Provider
}

// New returns a Service bound to reg.
func New(reg registry.Provider) *Service {
	return &Service{reg: reg}
}

func (s *Service) client() (transport.Client, error) {
	return s.reg.Client(registry.Property)
}

// Response lists matched property records.
type Response struct {
	Success bool             `json:"success"`
	Result  []map[string]any `json:"result"`
}

// GetParams fetches properties by property id.
type GetParams struct {
	PropertyIDs []string
	Attributes  []string
	Limit       *int
}

// Get returns the properties with the given ids.
func (s *Service) Get(ctx context.Context, p GetParams) (*Response, error) {
	if err := validate.Required("propertyIds", len(p.PropertyIDs) > 0); err != nil {
		return nil, err
	}
	return s.lookup(ctx, "/propertyId/"+strings.Join(p.PropertyIDs, ","), p.Attributes, p.Limit)
}

// ByLocationParams fetches properties by location id.
type ByLocationParams struct {
	LocationIDs []string
	Attributes  []string
	Limit       *int
}

// ByLocationID returns the properties at the given location ids.
func (s *Service) ByLocationID(ctx context.Context, p ByLocationParams) (*Response, error) {
	if err := validate.Required("locationIds", len(p.LocationIDs) > 0); err != nil {
		return nil, err
	}
	return s.lookup(ctx, "/"+strings.Join(p.LocationIDs, ","), p.Attributes, p.Limit)
}

func (s *Service) lookup(ctx context.Context, path string, attributes []string, limit *int) (*Response, error) {
	c, err := s.client()
	if err != nil {
		return nil, err
	}
	q := params.New().
		List("attributes", attributes).
		Int("limit", limit)

	var out Response
	if err := c.Query(ctx, path, q.URLValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Condition compares one attribute against a value.
type Condition struct {
	Field      string `json:"field"`
	Comparator string `json:"comparator"`
	Value      any    `json:"value"`
}

// ConditionGroup is a set of conditions combined by the enclosing Filter.
type ConditionGroup struct {
	Conditions []Condition `json:"conditions"`
}

// Filter combines its groups with Operator, "AND" or "OR".
type Filter struct {
	Operator string           `json:"operator"`
	Groups   []ConditionGroup `json:"groups"`
}

// QueryParams is a structured search over properties.
type QueryParams struct {
	SourceIDs []string
	// Limit defaults to 25.
	Limit      *int
	Offset     int
	Area       []Area
	Attributes []string
	Query      []Filter
}

type queryRequest struct {
	SourceIDs  []string `json:"sourceIds,omitempty"`
	Limit      int      `json:"limit"`
	Offset     int      `json:"offset"`
	Area       []Area   `json:"area,omitempty"`
	Attributes string   `json:"attributes,omitempty"`
	Query      []Filter `json:"query,omitempty"`
}

// QueryResponse is one page of query results.
type QueryResponse struct {
	Success   bool             `json:"success"`
	Result    []map[string]any `json:"result"`
	Size      int              `json:"size"`
	TotalSize int              `json:"totalSize"`
}

// Query searches properties by area, source and attribute filters.
func (s *Service) Query(ctx context.Context, p QueryParams) (*QueryResponse, error) {
	c, err := s.client()
	if err != nil {
		return nil, err
	}

	body := queryRequest{
		SourceIDs:  p.SourceIDs,
		Limit:      params.Deref(p.Limit, 25),
		Offset:     p.Offset,
		Area:       p.Area,
		Attributes: strings.Join(p.Attributes, ","),
		Query:      p.Query,
	}
	var out QueryResponse
	if err := c.Post(ctx, "/query", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
