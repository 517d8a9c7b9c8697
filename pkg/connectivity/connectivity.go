// Package connectivity wraps the broadband and mobile connectivity scores
// served by the area-reference service.
package connectivity

import (
	"context"
	"strings"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/registry"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// Service issues connectivity requests through a registry.
type Service struct {
	reg registry.Provider
}

// New returns a Service bound to reg.
func New(reg registry.Provider) *Service {
	return &Service{reg: reg}
}

// Response formats.
const (
	FormatBasic    = "basic"
	FormatDetailed = "detailed"
)

// ScoresParams selects the areas and periods to score.
type ScoresParams struct {
	GeographicCodes      []string
	IncludeBreakdown     *bool
	IncludeAreaInfo      *bool
	DataPeriod           string
	StartPeriod          string
	EndPeriod            string
	IncludePeriodHistory *bool
	PeriodLimit          *int
	// Format is FormatBasic or FormatDetailed.
	Format string
	Limit  *int
}

// Score is the connectivity score of one area.
type Score struct {
	Code          string             `json:"code"`
	Name          string             `json:"name,omitempty"`
	Type          string             `json:"type,omitempty"`
	Score         float64            `json:"score"`
	Breakdown     map[string]float64 `json:"breakdown,omitempty"`
	PeriodHistory []struct {
		Period string  `json:"period"`
		Score  float64 `json:"score"`
	} `json:"periodHistory,omitempty"`
}

// ScoresResponse lists a score per requested area.
type ScoresResponse struct {
	Success  bool    `json:"success"`
	Result   []Score `json:"result"`
	Metadata *struct {
		TotalCount  int `json:"totalCount"`
		PeriodRange *struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"periodRange,omitempty"`
	} `json:"metadata,omitempty"`
}

// Scores returns connectivity scores for GeographicCodes.
func (s *Service) Scores(ctx context.Context, p ScoresParams) (*ScoresResponse, error) {
	if err := validate.Required("geographicCodes", len(p.GeographicCodes) > 0); err != nil {
		return nil, err
	}

	c, err := s.reg.Client(registry.AreaReference)
	if err != nil {
		return nil, err
	}

	q := params.New().
		Bool("includeBreakdown", p.IncludeBreakdown).
		Bool("includeAreaInfo", p.IncludeAreaInfo).
		String("dataPeriod", p.DataPeriod).
		String("startPeriod", p.StartPeriod).
		String("endPeriod", p.EndPeriod).
		Bool("includePeriodHistory", p.IncludePeriodHistory).
		Int("periodLimit", p.PeriodLimit).
		String("format", p.Format).
		Int("limit", p.Limit)

	var out ScoresResponse
	if err := c.Query(ctx, "/connectivity/"+strings.Join(p.GeographicCodes, ","), q.URLValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
