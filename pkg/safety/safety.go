// Package safety wraps the safety service: crime records and statistics by
// area, the data catalogue, and neighbourhood watch schemes.
package safety

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/Vepler/http-sdk/pkg/crime"
	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/registry"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// MaxWatchRadius is the largest neighbourhood watch search radius in metres.
const MaxWatchRadius = 5000

// Service issues safety requests through a registry.
type Service struct {
	reg registry.Provider
}

// New returns a Service bound to reg.
func New(reg registry.Provider) *Service {
	return &Service{reg: reg}
}

func (s *Service) query(ctx context.Context, path string, q *params.Values, out any) error {
	c, err := s.reg.Client(registry.Safety)
	if err != nil {
		return err
	}
	return c.Query(ctx, path, q.URLValues(), out)
}

// CatalogParams filters the data catalogue.
type CatalogParams struct {
	Country       string
	OnlyAvailable *bool
}

// CatalogEntry describes one dataset the service can serve.
type CatalogEntry map[string]any

// Catalog lists the datasets available, optionally for one country.
func (s *Service) Catalog(ctx context.Context, p CatalogParams) ([]CatalogEntry, error) {
	q := params.New().
		String("country", p.Country).
		Bool("onlyAvailable", p.OnlyAvailable)

	var out []CatalogEntry
	if err := s.query(ctx, "/catalog", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Period selects either explicit periods or a start/end range, all YYYY-MM.
type Period struct {
	Periods   []string
	StartDate string
	EndDate   string
}

func (p Period) validate() error {
	return validate.PeriodsOrRange(strings.Join(p.Periods, ","), p.StartDate, p.EndDate)
}

func (p Period) apply(q *params.Values) *params.Values {
	return q.
		List("periods", p.Periods).
		String("startDate", p.StartDate).
		String("endDate", p.EndDate)
}

// CrimeDataParams selects raw crime records.
type CrimeDataParams struct {
	GeographicCodes []string
	Period
	Categories  []string
	CountryCode string
}

// CrimeData returns crime records for the requested areas and periods.
func (s *Service) CrimeData(ctx context.Context, p CrimeDataParams) ([]json.RawMessage, error) {
	if err := validate.First(
		validate.Required("geographicCodes", len(p.GeographicCodes) > 0),
		p.Period.validate(),
	); err != nil {
		return nil, err
	}

	q := p.Period.apply(params.New().List("geographicCodes", p.GeographicCodes)).
		List("categories", p.Categories).
		String("countryCode", p.CountryCode)

	var out []json.RawMessage
	if err := s.query(ctx, "/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AreaStatsParams selects statistics for one area.
type AreaStatsParams struct {
	AreaID string
	Period
	Categories  []string
	CountryCode string
}

// StatsResponse is the generic statistics envelope.
type StatsResponse struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
}

// AreaStats returns aggregate crime statistics for AreaID.
func (s *Service) AreaStats(ctx context.Context, p AreaStatsParams) (*StatsResponse, error) {
	if err := validate.First(
		validate.Required("areaId", p.AreaID != ""),
		p.Period.validate(),
	); err != nil {
		return nil, err
	}

	q := p.Period.apply(params.New().Set("areaId", p.AreaID)).
		List("categories", p.Categories).
		String("countryCode", p.CountryCode)

	var out StatsResponse
	if err := s.query(ctx, "/area/stats", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CategoryStatsParams selects per-category statistics for a set of areas.
type CategoryStatsParams struct {
	GeographicCodes []string
	Period
	Categories  []string
	CountryCode string
}

// CategoryStats returns statistics broken down by crime category.
func (s *Service) CategoryStats(ctx context.Context, p CategoryStatsParams) (*StatsResponse, error) {
	if err := validate.First(
		validate.Required("geographicCodes", len(p.GeographicCodes) > 0),
		p.Period.validate(),
	); err != nil {
		return nil, err
	}

	q := p.Period.apply(params.New().List("geographicCodes", p.GeographicCodes)).
		List("categories", p.Categories).
		String("countryCode", p.CountryCode)

	var out StatsResponse
	if err := s.query(ctx, "/area/category-stats", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GeographyMetrics returns the same metrics shape as the crime service,
// served from the safety dataset.
func (s *Service) GeographyMetrics(ctx context.Context, p crime.GeographyMetricsParams) ([]crime.AreaMetrics, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var out []crime.AreaMetrics
	if err := s.query(ctx, "/geography/metrics", p.Values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// WatchByLocationParams finds neighbourhood watch schemes near a point.
type WatchByLocationParams struct {
	Lng *float64
	Lat *float64
	// Radius in metres, at most MaxWatchRadius.
	Radius *int
}

// WatchResponse is the generic neighbourhood watch envelope.
type WatchResponse struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
}

// NeighborhoodWatchByLocation lists schemes around (Lat, Lng).
func (s *Service) NeighborhoodWatchByLocation(ctx context.Context, p WatchByLocationParams) (*WatchResponse, error) {
	if err := validate.First(
		validate.Required("lng", p.Lng != nil),
		validate.Required("lat", p.Lat != nil),
		validate.Max("radius", p.Radius, MaxWatchRadius),
	); err != nil {
		return nil, err
	}

	q := params.New().
		Float("lng", p.Lng).
		Float("lat", p.Lat).
		Int("radius", p.Radius)

	var out WatchResponse
	if err := s.query(ctx, "/api/neighborhood-watch/location", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NeighborhoodWatchByArea lists schemes covering areaID.
func (s *Service) NeighborhoodWatchByArea(ctx context.Context, areaID string) (*WatchResponse, error) {
	if err := validate.Required("areaId", areaID != ""); err != nil {
		return nil, err
	}

	var out WatchResponse
	if err := s.query(ctx, "/api/neighborhood-watch/area", params.New().Set("areaId", areaID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NeighborhoodWatchScheme returns one scheme, optionally with its boundary.
func (s *Service) NeighborhoodWatchScheme(ctx context.Context, provider, key string, includeBoundary *bool) (*WatchResponse, error) {
	if err := validate.First(
		validate.Required("provider", provider != ""),
		validate.Required("key", key != ""),
	); err != nil {
		return nil, err
	}

	var out WatchResponse
	q := params.New().Bool("includeBoundary", includeBoundary)
	if err := s.query(ctx, "/neighborhood-watch/"+url.PathEscape(provider)+"/"+url.PathEscape(key), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
