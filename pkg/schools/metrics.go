package schools

import (
	"context"
	"strconv"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// MetricsParams selects performance metrics for a set of schools.
type MetricsParams struct {
	SchoolIDs           []string
	AcademicYears       []string
	MetricCodes         []string
	Profile             string
	CohortType          string
	Period              string
	PeriodNumber        *int
	IncludeMetadata     bool
	PriorAttainment     string
	PupilCharacteristic string
}

// Metrics returns metric values for SchoolIDs.
func (s *Service) Metrics(ctx context.Context, p MetricsParams) (*Response, error) {
	if err := validate.Required("schoolIds", len(p.SchoolIDs) > 0); err != nil {
		return nil, err
	}
	c, err := s.client()
	if err != nil {
		return nil, err
	}

	q := params.New().
		List("schoolIds", p.SchoolIDs).
		List("academicYears", p.AcademicYears).
		List("metricCodes", p.MetricCodes).
		String("profile", p.Profile).
		String("cohortType", p.CohortType).
		String("period", p.Period).
		Int("periodNumber", p.PeriodNumber).
		Bool("includeMetadata", &p.IncludeMetadata).
		String("priorAttainment", p.PriorAttainment).
		String("pupilCharacteristic", p.PupilCharacteristic)

	var out Response
	if err := c.Query(ctx, "/metrics", q.URLValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GeographicMetricsParams aggregates metrics over a geography. Either
// MetricCodes or Profile is required.
type GeographicMetricsParams struct {
	MetricCodes         []string       `json:"metricCodes,omitempty"`
	AcademicYearID      string         `json:"academicYearId,omitempty"`
	Geography           map[string]any `json:"geography"`
	Profile             string         `json:"profile,omitempty"`
	CohortType          string         `json:"cohortType,omitempty"`
	HierarchicalResults *bool          `json:"hierarchicalResults,omitempty"`
	AggregationLevels   []string       `json:"aggregationLevels,omitempty"`
	IncludeMetadata     *bool          `json:"includeMetadata,omitempty"`
	Limit               int            `json:"limit,omitempty"`
	Offset              int            `json:"offset,omitempty"`
}

// GeographicMetrics returns metrics aggregated over the requested geography.
func (s *Service) GeographicMetrics(ctx context.Context, p GeographicMetricsParams) (*Response, error) {
	if err := validate.First(
		validate.EitherOr(`"metricCodes"`, `"profile"`, len(p.MetricCodes) > 0, p.Profile != ""),
		validate.Required("geography", len(p.Geography) > 0),
	); err != nil {
		return nil, err
	}
	c, err := s.client()
	if err != nil {
		return nil, err
	}

	var out Response
	if err := c.Post(ctx, "/metrics/geographic", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TimeSeriesParams selects a metric history for one school. Either
// MetricCodes or Profile is required.
type TimeSeriesParams struct {
	SchoolID            int
	MetricCodes         []string
	AcademicYears       []string
	Profile             []string
	CohortType          string
	Granularity         string
	PriorAttainment     string
	PupilCharacteristic string
}

// TimeSeriesMetrics returns metric values over time for one school.
func (s *Service) TimeSeriesMetrics(ctx context.Context, p TimeSeriesParams) (*Response, error) {
	if err := validate.First(
		validate.Required("schoolId", p.SchoolID != 0),
		validate.EitherOr(`"metricCodes"`, `"profile"`, len(p.MetricCodes) > 0, len(p.Profile) > 0),
	); err != nil {
		return nil, err
	}
	c, err := s.client()
	if err != nil {
		return nil, err
	}

	q := params.New().
		Set("schoolId", strconv.Itoa(p.SchoolID)).
		List("metricCodes", p.MetricCodes).
		List("academicYears", p.AcademicYears).
		List("profile", p.Profile).
		String("cohortType", p.CohortType).
		String("granularity", p.Granularity).
		String("priorAttainment", p.PriorAttainment).
		String("pupilCharacteristic", p.PupilCharacteristic)

	var out Response
	if err := c.Query(ctx, "/metrics/timeseries", q.URLValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
