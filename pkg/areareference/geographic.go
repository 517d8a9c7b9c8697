package areareference

import (
	"context"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// Spatial strategies accepted by ResolveGeography.
const (
	StrategyStrict       = "strict"
	StrategyCentroid     = "centroid"
	StrategyIntersection = "intersection"
	StrategyWeighted     = "weighted"
)

// ResolveGeographyParams maps an input area onto the supported tiers.
type ResolveGeographyParams struct {
	InputCode      string
	SupportedTiers []string
	// SpatialStrategy is one of the Strategy constants.
	SpatialStrategy string
	// IntersectionThreshold must lie in [0.1, 0.9]; required for the weighted strategy.
	IntersectionThreshold *float64
	// MaxChildren must lie in [1, 500000].
	MaxChildren *int
}

// ResolveGeography resolves InputCode to areas in one of SupportedTiers.
func (s *Service) ResolveGeography(ctx context.Context, p ResolveGeographyParams) (*Response, error) {
	if err := validate.First(
		validate.Required("inputCode", p.InputCode != ""),
		validate.Required("supportedTiers", len(p.SupportedTiers) > 0),
		weightedNeedsThreshold(p.SpatialStrategy, p.IntersectionThreshold != nil),
		validate.Range("intersectionThreshold", p.IntersectionThreshold, 0.1, 0.9),
		validate.Range("maxChildren", p.MaxChildren, 1, 500000),
	); err != nil {
		return nil, err
	}

	q := params.New().
		Set("inputCode", p.InputCode).
		List("supportedTiers", p.SupportedTiers).
		String("spatialStrategy", p.SpatialStrategy).
		Float("intersectionThreshold", p.IntersectionThreshold).
		Int("maxChildren", p.MaxChildren)

	var out Response
	if err := s.query(ctx, "/geographic/resolve", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func weightedNeedsThreshold(strategy string, hasThreshold bool) error {
	if strategy != StrategyWeighted || hasThreshold {
		return nil
	}
	return &validate.Error{
		Kind:    validate.KindConditional,
		Fields:  []string{"spatialStrategy", "intersectionThreshold"},
		Message: `Parameter "intersectionThreshold" is required when "spatialStrategy" is "weighted"`,
	}
}

// GeographyTypes lists the geography types the resolver understands.
func (s *Service) GeographyTypes(ctx context.Context, includeExamples *bool) (*Response, error) {
	q := params.New().Bool("includeExamples", includeExamples)

	var out Response
	if err := s.query(ctx, "/geographic/types", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CapabilityParams asks whether an input type can resolve to the given tiers.
type CapabilityParams struct {
	InputType      string
	SupportedTiers []string
}

// CheckResolutionCapability reports whether InputType resolves to any of SupportedTiers.
func (s *Service) CheckResolutionCapability(ctx context.Context, p CapabilityParams) (*Response, error) {
	if err := validate.First(
		validate.Required("inputType", p.InputType != ""),
		validate.Required("supportedTiers", len(p.SupportedTiers) > 0),
	); err != nil {
		return nil, err
	}

	q := params.New().
		Set("inputType", p.InputType).
		List("supportedTiers", p.SupportedTiers)

	var out Response
	if err := s.query(ctx, "/geographic/capability", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
