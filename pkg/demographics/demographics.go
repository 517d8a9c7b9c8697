// Package demographics queries census demographics through the rover service.
package demographics

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/registry"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// Result layouts.
const (
	FormatObject = "object"
	FormatArray  = "array"
)

// Service issues demographics requests through a registry.
type Service struct {
	reg registry.Provider
}

// New returns a Service bound to reg.
func New(reg registry.Provider) *Service {
	return &Service{reg: reg}
}

// QueryParams selects areas and topics.
type QueryParams struct {
	GeographyType  string
	GeographyCodes []string
	// Format is FormatObject (default) or FormatArray.
	Format         string
	Topics         []string
	CensusPeriod   string
	HierarchyLevel *int
	// IncludeMetadata defaults to false.
	IncludeMetadata bool
}

// Response carries the result in whichever layout Format requested.
type Response struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
}

// Records decodes an array-format result.
func (r *Response) Records() ([]map[string]any, error) {
	var out []map[string]any
	if err := json.Unmarshal(r.Result, &out); err != nil {
		return nil, eris.Wrap(err, "demographics: result is not an array")
	}
	return out, nil
}

// ByCode decodes an object-format result keyed by geography code.
func (r *Response) ByCode() (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal(r.Result, &out); err != nil {
		return nil, eris.Wrap(err, "demographics: result is not an object")
	}
	return out, nil
}

// Query returns demographics for GeographyCodes of GeographyType.
func (s *Service) Query(ctx context.Context, p QueryParams) (*Response, error) {
	if err := validate.First(
		validate.Required("geography_type", p.GeographyType != ""),
		validate.Required("geography_codes", len(p.GeographyCodes) > 0),
	); err != nil {
		return nil, err
	}
	c, err := s.reg.Client(registry.Rover)
	if err != nil {
		return nil, err
	}

	format := p.Format
	if format == "" {
		format = FormatObject
	}
	q := params.New().
		Set("geography_type", p.GeographyType).
		List("geography_codes", p.GeographyCodes).
		Set("format", format).
		List("topics", p.Topics).
		String("census_period", p.CensusPeriod).
		Int("hierarchy_level", p.HierarchyLevel).
		Bool("include_metadata", &p.IncludeMetadata)

	var out Response
	if err := c.Query(ctx, "/demographics/query", q.URLValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
