// Package h3 wraps the H3 cell aggregation endpoint of the area-reference service.
package h3

import (
	"context"
	"encoding/json"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/registry"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// Service issues H3 requests through a registry.
type Service struct {
	reg registry.Provider
}

// New returns a Service bound to reg.
func New(reg registry.Provider) *Service {
	return &Service{reg: reg}
}

// Aggregation components.
const (
	ComponentRelationships = "relationships"
	ComponentCoverage      = "coverage"
	ComponentMetrics       = "metrics"
)

// DefaultResolution is the H3 resolution used when none is given.
const DefaultResolution = 9

// LatLng is a WGS84 coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is either a coordinate or an existing H3 index, with a caller tag.
type Location struct {
	ID          string  `json:"id,omitempty"`
	Coordinates *LatLng `json:"coordinates,omitempty"`
	H3Index     string  `json:"h3Index,omitempty"`
}

// AggregationsParams requests aggregated data for the H3 cells covering Locations.
type AggregationsParams struct {
	Locations []Location
	// Resolution must lie in [0, 15]. Defaults to 9.
	Resolution *int
	// Components defaults to all three.
	Components           []string
	ForceRefresh         bool
	RefreshCoverageTypes []string
}

type aggregationsRequest struct {
	Locations            []Location `json:"locations"`
	Resolution           int        `json:"resolution"`
	Components           []string   `json:"components"`
	ForceRefresh         bool       `json:"forceRefresh"`
	RefreshCoverageTypes []string   `json:"refreshCoverageTypes,omitempty"`
}

// Cell is the aggregate for one H3 cell.
type Cell struct {
	H3Index       string          `json:"h3Index"`
	Coordinates   *LatLng         `json:"coordinates,omitempty"`
	LastUpdated   string          `json:"lastUpdated,omitempty"`
	Relationships json.RawMessage `json:"relationships,omitempty"`
	Coverage      json.RawMessage `json:"coverage,omitempty"`
	Metrics       json.RawMessage `json:"metrics,omitempty"`
}

// AggregationsResponse carries one Cell per resolved location.
type AggregationsResponse struct {
	Success  bool   `json:"success"`
	Results  []Cell `json:"results"`
	Metadata struct {
		Resolution     int `json:"resolution"`
		TotalRequested int `json:"totalRequested"`
	} `json:"metadata"`
}

// Aggregations returns per-cell relationships, coverage and metrics.
func (s *Service) Aggregations(ctx context.Context, p AggregationsParams) (*AggregationsResponse, error) {
	if err := validate.First(
		validate.Required("locations", len(p.Locations) > 0),
		validate.Range("resolution", p.Resolution, 0, 15),
	); err != nil {
		return nil, err
	}

	body := aggregationsRequest{
		Locations:            p.Locations,
		Resolution:           params.Deref(p.Resolution, DefaultResolution),
		Components:           p.Components,
		ForceRefresh:         p.ForceRefresh,
		RefreshCoverageTypes: p.RefreshCoverageTypes,
	}
	if len(body.Components) == 0 {
		body.Components = []string{ComponentRelationships, ComponentCoverage, ComponentMetrics}
	}

	c, err := s.reg.Client(registry.AreaReference)
	if err != nil {
		return nil, err
	}
	var out AggregationsResponse
	if err := c.Post(ctx, "/h3/aggregations", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
