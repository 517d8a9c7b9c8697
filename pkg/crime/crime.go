// Package crime wraps the crime statistics service.
package crime

import (
	"context"
	"strings"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/registry"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// Service issues crime requests through a registry.
type Service struct {
	reg registry.Provider
}

// New returns a Service bound to reg.
func New(reg registry.Provider) *Service {
	return &Service{reg: reg}
}

// GeographyMetricsParams selects areas and either a list of periods or a
// start/end range. Periods and dates use the YYYY-MM format.
type GeographyMetricsParams struct {
	GeographicCodes []string
	Periods         []string
	StartDate       string
	EndDate         string
	MergeAreas      bool
	// IncludeTimeSeries defaults to true.
	IncludeTimeSeries *bool
	// Months of time series data, in [1, 24]. Defaults to 12.
	Months *int
}

// Validate checks the request before it is sent.
func (p GeographyMetricsParams) Validate() error {
	return validate.First(
		validate.Required("geographicCodes", len(p.GeographicCodes) > 0),
		validate.PeriodsOrRange(strings.Join(p.Periods, ","), p.StartDate, p.EndDate),
		validate.Range("months", p.Months, 1, 24),
	)
}

// Values renders the query string, applying defaults.
func (p GeographyMetricsParams) Values() *params.Values {
	return params.New().
		List("geographicCodes", p.GeographicCodes).
		List("periods", p.Periods).
		String("startDate", p.StartDate).
		String("endDate", p.EndDate).
		Bool("mergeAreas", &p.MergeAreas).
		Bool("includeTimeSeries", params.Ptr(params.Deref(p.IncludeTimeSeries, true))).
		Int("months", params.Ptr(params.Deref(p.Months, 12)))
}

// CategoryMetrics is the count, rate and score of one crime category.
type CategoryMetrics struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Rate     float64 `json:"rate"`
	Score    float64 `json:"score"`
}

// AreaMetrics summarises crime in one area for one period.
type AreaMetrics struct {
	GeographicCode  string            `json:"geographicCode"`
	Name            string            `json:"name"`
	Population      int               `json:"population"`
	Period          string            `json:"period"`
	TotalCrimeCount int               `json:"totalCrimeCount"`
	TotalCrimeRate  float64           `json:"totalCrimeRate"`
	TotalCrimeScore float64           `json:"totalCrimeScore"`
	Categories      []CategoryMetrics `json:"categories"`
	TimeSeriesData  []struct {
		Period     string         `json:"period"`
		Categories map[string]int `json:"categories"`
	} `json:"timeSeriesData,omitempty"`
}

// GeographyMetricsResponse lists metrics per area, or one merged entry.
type GeographyMetricsResponse struct {
	Success bool          `json:"success"`
	Result  []AreaMetrics `json:"result"`
}

// GeographyMetrics returns crime counts, rates and scores for the requested areas.
func (s *Service) GeographyMetrics(ctx context.Context, p GeographyMetricsParams) (*GeographyMetricsResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c, err := s.reg.Client(registry.Crime)
	if err != nil {
		return nil, err
	}
	var out GeographyMetricsResponse
	if err := c.Query(ctx, "/geography/metrics", p.Values().URLValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
