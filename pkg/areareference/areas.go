package areareference

import (
	"context"
	"net/url"
	"strings"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// GetAreasParams selects areas by a lookup field and a list of identifiers.
type GetAreasParams struct {
	Field                string
	IDs                  []string
	GroupBy              string
	IncludeRelationships *bool
	IncludeHierarchy     *bool
	IncludeGeometry      *bool
}

// AreasResponse wraps a list of areas.
type AreasResponse struct {
	Success bool   `json:"success"`
	Result  []Area `json:"result"`
}

// GetAreas fetches areas whose Field matches one of IDs.
func (s *Service) GetAreas(ctx context.Context, p GetAreasParams) (*AreasResponse, error) {
	if err := validate.Required("field", p.Field != ""); err != nil {
		return nil, err
	}

	q := params.New().
		String("groupBy", p.GroupBy).
		Bool("includeRelationships", p.IncludeRelationships).
		Bool("includeHierarchy", p.IncludeHierarchy).
		Bool("includeGeometry", p.IncludeGeometry)

	var out AreasResponse
	if err := s.query(ctx, "/"+p.Field+"/"+strings.Join(p.IDs, ","), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WithinParams finds areas of the given types around a point.
type WithinParams struct {
	Lat  float64
	Lng  float64
	Type []string
	// Radius in kilometres. Defaults to 1.
	Radius          *float64
	IncludeGeometry bool
}

// WithinResponse lists the matching areas ordered by distance.
type WithinResponse struct {
	Results []Area `json:"results"`
}

// Within returns areas of the requested types within Radius of (Lat, Lng).
func (s *Service) Within(ctx context.Context, p WithinParams) (*WithinResponse, error) {
	if err := validate.Required("type", len(p.Type) > 0); err != nil {
		return nil, err
	}

	q := params.New().
		Float("lat", &p.Lat).
		Float("lng", &p.Lng).
		Float("radius", params.Ptr(params.Deref(p.Radius, 1))).
		List("type", p.Type).
		Bool("includeGeometry", &p.IncludeGeometry)

	var out WithinResponse
	if err := s.query(ctx, "/within", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChildrenParams lists the children of a parent area, optionally of one type.
type ChildrenParams struct {
	ParentCode       string
	ChildType        string
	IncludeHierarchy bool
	IncludeGeometry  bool
	// Limit defaults to 100.
	Limit  *int
	Offset int
}

// ChildrenResponse is a page of child areas.
type ChildrenResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Parent    map[string]any   `json:"parent"`
		ChildType string           `json:"childType"`
		Children  []map[string]any `json:"children"`
		Total     int              `json:"total"`
		Limit     int              `json:"limit"`
		Offset    int              `json:"offset"`
	} `json:"result"`
}

// Children returns the areas nested under ParentCode.
func (s *Service) Children(ctx context.Context, p ChildrenParams) (*ChildrenResponse, error) {
	if err := validate.Required("parentCode", p.ParentCode != ""); err != nil {
		return nil, err
	}

	path := "/children/" + url.PathEscape(p.ParentCode)
	if p.ChildType != "" {
		path += "/" + url.PathEscape(p.ChildType)
	}
	q := params.New().
		Bool("includeHierarchy", &p.IncludeHierarchy).
		Bool("includeGeometry", &p.IncludeGeometry).
		Int("limit", params.Ptr(params.Deref(p.Limit, 100))).
		Int("offset", &p.Offset)

	var out ChildrenResponse
	if err := s.query(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BorderParams finds SourceType areas bordering one target area.
type BorderParams struct {
	TargetType string
	TargetCode string
	SourceType string
	// Limit defaults to 10.
	Limit *int
	// MaxDistance in metres. Defaults to 5000.
	MaxDistance     *int
	IncludeGeometry bool
}

// BorderArea is a neighbouring area plus how it relates to the target.
type BorderArea struct {
	Area
	Relationship struct {
		TouchesBoundary   bool    `json:"touches_boundary"`
		Distance          float64 `json:"distance"`
		DistanceMeters    float64 `json:"distance_meters"`
		OverlapPercentage float64 `json:"overlap_percentage"`
		Description       string  `json:"description"`
	} `json:"relationship"`
}

// BorderResponse lists the neighbours of the target area.
type BorderResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Target struct {
			Code string `json:"code"`
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"target"`
		SourceType string       `json:"sourceType"`
		Areas      []BorderArea `json:"areas"`
		Count      int          `json:"count"`
	} `json:"result"`
}

// Border returns areas adjacent to, or within MaxDistance of, the target area.
func (s *Service) Border(ctx context.Context, p BorderParams) (*BorderResponse, error) {
	if err := validate.First(
		validate.Required("targetType", p.TargetType != ""),
		validate.Required("targetCode", p.TargetCode != ""),
		validate.Required("sourceType", p.SourceType != ""),
	); err != nil {
		return nil, err
	}

	q := params.New().
		Int("limit", params.Ptr(params.Deref(p.Limit, 10))).
		Int("maxDistance", params.Ptr(params.Deref(p.MaxDistance, 5000))).
		Bool("includeGeometry", &p.IncludeGeometry)

	var out BorderResponse
	if err := s.query(ctx, "/border/"+url.PathEscape(p.TargetType)+"/"+url.PathEscape(p.TargetCode)+"/"+url.PathEscape(p.SourceType), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QueryByTypeParams pages through every area of one type.
type QueryByTypeParams struct {
	Type string
	// Limit defaults to 100.
	Limit                *int
	Offset               int
	IncludeRelationships bool
	IncludeHierarchy     bool
	IncludeGeometry      bool
}

// QueryByTypeResponse is a page of areas plus paging metadata.
type QueryByTypeResponse struct {
	Success bool   `json:"success"`
	Result  []Area `json:"result"`
	Meta    struct {
		Total  int    `json:"total"`
		Limit  int    `json:"limit"`
		Offset int    `json:"offset"`
		Type   string `json:"type"`
	} `json:"meta"`
}

// QueryByType returns one page of areas of Type.
func (s *Service) QueryByType(ctx context.Context, p QueryByTypeParams) (*QueryByTypeResponse, error) {
	if err := validate.Required("type", p.Type != ""); err != nil {
		return nil, err
	}

	q := params.New().
		Int("limit", params.Ptr(params.Deref(p.Limit, 100))).
		Int("offset", &p.Offset).
		Bool("includeRelationships", &p.IncludeRelationships).
		Bool("includeHierarchy", &p.IncludeHierarchy).
		Bool("includeGeometry", &p.IncludeGeometry)

	var out QueryByTypeResponse
	if err := s.query(ctx, "/query/"+url.PathEscape(p.Type), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AutocompleteParams searches area names by prefix.
type AutocompleteParams struct {
	Query string
	Types []string
}

// AutocompleteResponse lists matching locations.
type AutocompleteResponse struct {
	Success bool             `json:"success"`
	Results []map[string]any `json:"results"`
}

// Autocomplete suggests areas whose name starts with Query.
func (s *Service) Autocomplete(ctx context.Context, p AutocompleteParams) (*AutocompleteResponse, error) {
	if err := validate.Required("query", p.Query != ""); err != nil {
		return nil, err
	}

	q := params.New().
		Set("query", p.Query).
		List("types", p.Types)

	var out AutocompleteResponse
	if err := s.query(ctx, "/search/locations/autocomplete", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
