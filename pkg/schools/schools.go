// Package schools wraps the schools service: school records, search, and
// performance metrics.
package schools

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/registry"
	"github.com/Vepler/http-sdk/pkg/transport"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// Service issues schools requests through a registry.
type Service struct {
	reg registry.Provider
}

// New returns a Service bound to reg.
func New(reg registry.Provider) *Service {
	return &Service{reg: reg}
}

func (s *Service) client() (transport.Client, error) {
	return s.reg.Client(registry.Schools)
}

// Response is the envelope shared by the schools endpoints. Result is left
// raw because its shape depends on the requested fields.
type Response struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Meta    json.RawMessage `json:"meta,omitempty"`
}

// ListParams filters and pages through schools.
type ListParams struct {
	// Page defaults to 1.
	Page *int
	// Limit defaults to 20.
	Limit  *int
	Sort   string
	Fields []string
	Name   string
	URN    string
	Slug   string
	Area   map[string]any
	Filter map[string]any
}

type listRequest struct {
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
	Sort   string         `json:"sort,omitempty"`
	Fields []string       `json:"fields,omitempty"`
	Name   string         `json:"name,omitempty"`
	URN    string         `json:"urn,omitempty"`
	Slug   string         `json:"slug,omitempty"`
	Area   map[string]any `json:"area,omitempty"`
	Filter map[string]any `json:"filter,omitempty"`
}

// List returns one page of schools matching the filters.
func (s *Service) List(ctx context.Context, p ListParams) (*Response, error) {
	c, err := s.client()
	if err != nil {
		return nil, err
	}

	body := listRequest{
		Page:   params.Deref(p.Page, 1),
		Limit:  params.Deref(p.Limit, 20),
		Sort:   p.Sort,
		Fields: p.Fields,
		Name:   p.Name,
		URN:    p.URN,
		Slug:   p.Slug,
		Area:   p.Area,
		Filter: p.Filter,
	}
	var out Response
	if err := c.Post(ctx, "/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByID returns one school. Inspection reports are included unless
// includeReports is explicitly false.
func (s *Service) ByID(ctx context.Context, id int, includeReports *bool) (*Response, error) {
	if err := validate.Required("id", id != 0); err != nil {
		return nil, err
	}
	c, err := s.client()
	if err != nil {
		return nil, err
	}

	q := params.New().Bool("includeReports", params.Ptr(params.Deref(includeReports, true)))
	var out Response
	if err := c.Query(ctx, "/schools/"+strconv.Itoa(id), q.URLValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchParams is a free-text school search.
type SearchParams struct {
	Query string
	// Limit defaults to 20.
	Limit *int
	// Page defaults to 1.
	Page   *int
	Type   string
	Rating string
	// Status defaults to "open".
	Status string
}

// Search finds schools by name or location text.
func (s *Service) Search(ctx context.Context, p SearchParams) (*Response, error) {
	if err := validate.Required("query", p.Query != ""); err != nil {
		return nil, err
	}
	c, err := s.client()
	if err != nil {
		return nil, err
	}

	status := p.Status
	if status == "" {
		status = "open"
	}
	q := params.New().
		Set("query", p.Query).
		Int("limit", params.Ptr(params.Deref(p.Limit, 20))).
		Int("page", params.Ptr(params.Deref(p.Page, 1))).
		String("type", p.Type).
		String("rating", p.Rating).
		Set("status", status)

	var out Response
	if err := c.Query(ctx, "/search/schools", q.URLValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AutocompleteParams suggests schools by name prefix.
type AutocompleteParams struct {
	Prefix string
	// Limit defaults to 10.
	Limit  *int
	Status string
	Type   string
}

// Autocomplete returns school name suggestions for Prefix.
func (s *Service) Autocomplete(ctx context.Context, p AutocompleteParams) (*Response, error) {
	if err := validate.Required("prefix", p.Prefix != ""); err != nil {
		return nil, err
	}
	c, err := s.client()
	if err != nil {
		return nil, err
	}

	q := params.New().
		Set("prefix", p.Prefix).
		Int("limit", params.Ptr(params.Deref(p.Limit, 10))).
		String("status", p.Status).
		String("type", p.Type)

	var out Response
	if err := c.Query(ctx, "/search/schools/autocomplete", q.URLValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
