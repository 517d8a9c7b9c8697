// Package counciltax wraps the council-register service: council tax bands
// and property records keyed by location ID.
package counciltax

import (
	"context"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/registry"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// MaxLocationIDs is the most location IDs one request may carry.
const MaxLocationIDs = 10

// Service issues council-register requests through a registry.
type Service struct {
	reg registry.Provider
}

// New returns a Service bound to reg.
func New(reg registry.Provider) *Service {
	return &Service{reg: reg}
}

// PropertyParams selects properties by location ID.
type PropertyParams struct {
	LocationIDs []string
	// AttemptLookup asks the service to fetch records it has not yet cached.
	AttemptLookup *bool
}

// Record is the council tax entry for one property.
type Record struct {
	LocationID string         `json:"locationId"`
	Address    string         `json:"address,omitempty"`
	Postcode   string         `json:"postcode,omitempty"`
	Band       string         `json:"band,omitempty"`
	Authority  string         `json:"authority,omitempty"`
}

// PropertyResponse lists matched records.
type PropertyResponse struct {
	Success bool     `json:"success"`
	Result  []Record `json:"result"`
}

// Property returns council tax records for up to MaxLocationIDs locations.
func (s *Service) Property(ctx context.Context, p PropertyParams) (*PropertyResponse, error) {
	n := len(p.LocationIDs)
	if err := validate.First(
		validate.Required("locationId", n > 0),
		validate.Max("locationId", &n, MaxLocationIDs),
	); err != nil {
		return nil, err
	}
	c, err := s.reg.Client(registry.CouncilRegister)
	if err != nil {
		return nil, err
	}

	q := params.New().
		List("locationId", p.LocationIDs).
		Bool("attemptLookup", p.AttemptLookup)

	var out PropertyResponse
	if err := c.Query(ctx, "/property", q.URLValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
