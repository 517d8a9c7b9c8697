package areareference

import (
	"context"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// QueryMetricsParams filters metric values. Every field is optional.
type QueryMetricsParams struct {
	MetricIDs               []string
	GeographicEntityIDs     []string
	GeographicEntityTypes   []string
	StartYear               *int
	EndYear                 *int
	StartMonth              *int
	EndMonth                *int
	SourceServices          []string
	Limit                   *int
	Offset                  *int
	SortBy                  string
	SortOrder               string // ASC or DESC
	IncludeMetric           *bool
	IncludeGeographicEntity *bool
	Attributes              []string
}

// QueryMetricsResponse holds metric values and the total match count.
type QueryMetricsResponse struct {
	Success bool             `json:"success"`
	Result  []map[string]any `json:"result"`
	Count   int              `json:"count"`
}

// QueryMetrics returns metric values matching the supplied filters.
func (s *Service) QueryMetrics(ctx context.Context, p QueryMetricsParams) (*QueryMetricsResponse, error) {
	q := params.New().
		List("metricIds", p.MetricIDs).
		List("geographicEntityIds", p.GeographicEntityIDs).
		List("geographicEntityTypes", p.GeographicEntityTypes).
		Int("startYear", p.StartYear).
		Int("endYear", p.EndYear).
		Int("startMonth", p.StartMonth).
		Int("endMonth", p.EndMonth).
		List("sourceServices", p.SourceServices).
		Int("limit", p.Limit).
		Int("offset", p.Offset).
		String("sortBy", p.SortBy).
		String("sortOrder", p.SortOrder).
		Bool("includeMetric", p.IncludeMetric).
		Bool("includeGeographicEntity", p.IncludeGeographicEntity).
		List("attributes", p.Attributes)

	var out QueryMetricsResponse
	if err := s.query(ctx, "/metric-values", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CoverageParams measures how a source area is covered either by one target
// area or by areas of a coverage type. The two modes are mutually exclusive.
type CoverageParams struct {
	SourceCode    string
	SourceType    string
	TargetCode    string
	TargetType    string
	CoverageType  string
	CoverageValue string
	// Aggregation defaults to "total".
	Aggregation string
}

// Coverage returns the overlap between the source area and the requested target.
func (s *Service) Coverage(ctx context.Context, p CoverageParams) (*Response, error) {
	hasTarget := p.TargetCode != "" || p.TargetType != ""
	hasCoverage := p.CoverageType != "" || p.CoverageValue != ""

	if err := validate.First(
		validate.Required("sourceCode", p.SourceCode != ""),
		validate.Required("sourceType", p.SourceType != ""),
		validate.MutuallyExclusive("targetCode/targetType", "coverageType/coverageValue", hasTarget, hasCoverage),
		validate.EitherOr("targetCode/targetType", "coverageType", hasTarget, hasCoverage),
		validate.Conditional("targetCode", "targetType", p.TargetCode != "", p.TargetType != ""),
		validate.Conditional("coverageValue", "coverageType", p.CoverageValue != "", p.CoverageType != ""),
	); err != nil {
		return nil, err
	}

	aggregation := p.Aggregation
	if aggregation == "" {
		aggregation = "total"
	}
	q := params.New().
		Set("sourceCode", p.SourceCode).
		Set("sourceType", p.SourceType).
		String("targetCode", p.TargetCode).
		String("targetType", p.TargetType).
		String("coverageType", p.CoverageType).
		String("coverageValue", p.CoverageValue).
		Set("aggregation", aggregation)

	var out Response
	if err := s.query(ctx, "/coverage", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
