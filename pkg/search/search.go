// Package search wraps the unified search service, which routes a free-text
// query to whichever data sources match its intent.
package search

import (
	"context"
	"encoding/json"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/registry"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// Service issues search requests through a registry.
type Service struct {
	reg registry.Provider
}

// New returns a Service bound to reg.
func New(reg registry.Provider) *Service {
	return &Service{reg: reg}
}

// Params is a unified search query.
type Params struct {
	Query string
	// Limit defaults to 10.
	Limit  *int
	Offset int
	// Source restricts results to one data source.
	Source string
}

// Hit is one search result. Data is source-specific.
type Hit struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type,omitempty"`
	Label  string          `json:"label,omitempty"`
	Score  float64         `json:"score,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Response is one page of hits.
type Response struct {
	Success bool  `json:"success"`
	Result  []Hit `json:"result"`
	Meta    struct {
		Total  int    `json:"total"`
		Limit  int    `json:"limit"`
		Offset int    `json:"offset"`
		Intent string `json:"intent,omitempty"`
	} `json:"meta"`
}

// Search runs Query against the service root.
func (s *Service) Search(ctx context.Context, p Params) (*Response, error) {
	if err := validate.Required("query", p.Query != ""); err != nil {
		return nil, err
	}
	c, err := s.reg.Client(registry.Search)
	if err != nil {
		return nil, err
	}

	q := params.New().
		Set("query", p.Query).
		Int("limit", params.Ptr(params.Deref(p.Limit, 10))).
		Int("offset", &p.Offset).
		String("source", p.Source)

	var out Response
	if err := c.Query(ctx, "", q.URLValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
