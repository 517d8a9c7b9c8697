package areareference

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/Vepler/http-sdk/internal/sdktest"
	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/registry"
	"github.com/Vepler/http-sdk/pkg/transport"
	"github.com/Vepler/http-sdk/pkg/validate"
)

func TestWithin(t *testing.T) {
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/area-reference/within", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "51.5", q.Get("lat"))
		assert.Equal(t, "-0.12", q.Get("lng"))
		assert.Equal(t, "1", q.Get("radius"))
		assert.Equal(t, "lsoa21,msoa21", q.Get("type"))
		assert.Equal(t, "false", q.Get("includeGeometry"))
		assert.Equal(t, sdktest.APIKey, r.Header.Get(transport.APIKeyHeader))

		sdktest.JSON(t, w, map[string]any{
			"results": []map[string]any{{
				"code":     "E01000001",
				"name":     "City of London 001A",
				"type":     "lsoa21",
				"distance": 0.2,
				"geometry": map[string]any{"type": "Point", "coordinates": []float64{-0.12, 51.5}},
			}},
		})
	}))

	out, err := New(reg).Within(context.Background(), WithinParams{
		Lat:  51.5,
		Lng:  -0.12,
		Type: []string{"lsoa21", "msoa21"},
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "E01000001", out.Results[0].Code)

	shape, err := out.Results[0].Shape()
	require.NoError(t, err)
	pt, ok := shape.(*geom.Point)
	require.True(t, ok)
	assert.InDelta(t, -0.12, pt.X(), 1e-9)
	assert.InDelta(t, 51.5, pt.Y(), 1e-9)
}

func TestWithin_RequiresType(t *testing.T) {
	_, err := New(sdktest.Unreachable(t)).Within(context.Background(), WithinParams{Lat: 1, Lng: 1})
	var ve *validate.Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"type"}, ve.Fields)
}

func TestDecodeGeometry_Empty(t *testing.T) {
	g, err := DecodeGeometry(nil)
	require.NoError(t, err)
	assert.Nil(t, g)

	g, err = DecodeGeometry([]byte("null"))
	require.NoError(t, err)
	assert.Nil(t, g)

	_, err = DecodeGeometry([]byte(`{"type":"Nope"}`))
	assert.Error(t, err)
}

func TestGetAreas_OmitsAbsentOptionals(t *testing.T) {
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/area-reference/code/E01000001,E01000002", r.URL.Path)
		assert.Equal(t, "includeGeometry=true", r.URL.RawQuery)
		sdktest.JSON(t, w, map[string]any{"success": true, "result": []any{}})
	}))

	out, err := New(reg).GetAreas(context.Background(), GetAreasParams{
		Field:           "code",
		IDs:             []string{"E01000001", "E01000002"},
		IncludeGeometry: params.Ptr(true),
	})
	require.NoError(t, err)
	assert.True(t, out.Success)
}

func TestChildren(t *testing.T) {
	tests := []struct {
		name     string
		params   ChildrenParams
		wantPath string
		wantLim  string
	}{
		{"all_children", ChildrenParams{ParentCode: "E09000001"}, "/area-reference/children/E09000001", "100"},
		{"typed", ChildrenParams{ParentCode: "E09000001", ChildType: "lsoa21", Limit: params.Ptr(5)}, "/area-reference/children/E09000001/lsoa21", "5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantPath, r.URL.Path)
				assert.Equal(t, tt.wantLim, r.URL.Query().Get("limit"))
				assert.Equal(t, "0", r.URL.Query().Get("offset"))
				sdktest.JSON(t, w, map[string]any{"success": true, "result": map[string]any{"total": 3}})
			}))
			out, err := New(reg).Children(context.Background(), tt.params)
			require.NoError(t, err)
			assert.Equal(t, 3, out.Result.Total)
		})
	}
}

func TestPathSegmentsAreEscaped(t *testing.T) {
	var paths []string
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.EscapedPath())
		sdktest.JSON(t, w, map[string]any{"success": true})
	}))
	svc := New(reg)
	ctx := context.Background()

	_, err := svc.Children(ctx, ChildrenParams{ParentCode: "a/b", ChildType: "lsoa21"})
	require.NoError(t, err)
	_, err = svc.Border(ctx, BorderParams{TargetType: "lad21", TargetCode: "x/y", SourceType: "lsoa21"})
	require.NoError(t, err)
	_, err = svc.QueryByType(ctx, QueryByTypeParams{Type: "lad21?x"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/area-reference/children/a%2Fb/lsoa21",
		"/area-reference/border/lad21/x%2Fy/lsoa21",
		"/area-reference/query/lad21%3Fx",
	}, paths)
}

func TestBorder(t *testing.T) {
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/area-reference/border/lad21/E09000001/lsoa21", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "5000", r.URL.Query().Get("maxDistance"))
		sdktest.JSON(t, w, map[string]any{
			"success": true,
			"result": map[string]any{
				"sourceType": "lsoa21",
				"count":      1,
				"areas": []map[string]any{{
					"code":         "E01000005",
					"relationship": map[string]any{"touches_boundary": true, "distance_meters": 0},
				}},
			},
		})
	}))

	out, err := New(reg).Border(context.Background(), BorderParams{TargetType: "lad21", TargetCode: "E09000001", SourceType: "lsoa21"})
	require.NoError(t, err)
	require.Len(t, out.Result.Areas, 1)
	assert.True(t, out.Result.Areas[0].Relationship.TouchesBoundary)
	assert.Equal(t, "E01000005", out.Result.Areas[0].Code)
}

func TestBorder_Validation(t *testing.T) {
	svc := New(sdktest.Unreachable(t))
	_, err := svc.Border(context.Background(), BorderParams{TargetType: "lad21", SourceType: "lsoa21"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"targetCode"`)
}

func TestCoverage_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params CoverageParams
		kind   validate.Kind
	}{
		{"missing_source", CoverageParams{SourceType: "lsoa21", TargetCode: "x", TargetType: "y"}, validate.KindRequired},
		{"both_modes", CoverageParams{SourceCode: "a", SourceType: "b", TargetType: "lad21", CoverageType: "flood"}, validate.KindMutuallyExclusive},
		{"neither_mode", CoverageParams{SourceCode: "a", SourceType: "b"}, validate.KindEitherOr},
		{"code_without_type", CoverageParams{SourceCode: "a", SourceType: "b", TargetCode: "E09000001"}, validate.KindConditional},
		{"value_without_type", CoverageParams{SourceCode: "a", SourceType: "b", CoverageValue: "high"}, validate.KindConditional},
	}
	svc := New(sdktest.Unreachable(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Coverage(context.Background(), tt.params)
			var ve *validate.Error
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.kind, ve.Kind)
		})
	}
}

func TestCoverage(t *testing.T) {
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/area-reference/coverage", r.URL.Path)
		assert.Equal(t, "aggregation=total&coverageType=flood&sourceCode=a&sourceType=b", r.URL.RawQuery)
		sdktest.JSON(t, w, map[string]any{"success": true, "result": map[string]any{"percentage": 12.5}})
	}))

	out, err := New(reg).Coverage(context.Background(), CoverageParams{SourceCode: "a", SourceType: "b", CoverageType: "flood"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"percentage": 12.5}`, string(out.Result))
}

func TestResolveGeography_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  ResolveGeographyParams
		wantMsg string
	}{
		{"missing_input", ResolveGeographyParams{SupportedTiers: []string{"lad21"}}, `"inputCode"`},
		{"weighted_without_threshold", ResolveGeographyParams{InputCode: "x", SupportedTiers: []string{"a"}, SpatialStrategy: StrategyWeighted}, "weighted"},
		{"threshold_low", ResolveGeographyParams{InputCode: "x", SupportedTiers: []string{"a"}, IntersectionThreshold: params.Ptr(0.05)}, "between 0.1 and 0.9"},
		{"threshold_high", ResolveGeographyParams{InputCode: "x", SupportedTiers: []string{"a"}, IntersectionThreshold: params.Ptr(0.95)}, "between 0.1 and 0.9"},
		{"max_children_zero", ResolveGeographyParams{InputCode: "x", SupportedTiers: []string{"a"}, MaxChildren: params.Ptr(0)}, "maxChildren"},
		{"max_children_high", ResolveGeographyParams{InputCode: "x", SupportedTiers: []string{"a"}, MaxChildren: params.Ptr(500001)}, "maxChildren"},
	}
	svc := New(sdktest.Unreachable(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ResolveGeography(context.Background(), tt.params)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestResolveGeography(t *testing.T) {
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/area-reference/geographic/resolve", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "E09000001", q.Get("inputCode"))
		assert.Equal(t, "lad21,msoa21", q.Get("supportedTiers"))
		assert.Equal(t, "0.5", q.Get("intersectionThreshold"))
		assert.False(t, q.Has("maxChildren"))
		sdktest.JSON(t, w, map[string]any{"success": true})
	}))

	_, err := New(reg).ResolveGeography(context.Background(), ResolveGeographyParams{
		InputCode:             "E09000001",
		SupportedTiers:        []string{"lad21", "msoa21"},
		SpatialStrategy:       StrategyWeighted,
		IntersectionThreshold: params.Ptr(0.5),
	})
	require.NoError(t, err)
}

func TestQueryMetrics_NoFilters(t *testing.T) {
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/area-reference/metric-values", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		sdktest.JSON(t, w, map[string]any{"success": true, "count": 0})
	}))

	out, err := New(reg).QueryMetrics(context.Background(), QueryMetricsParams{})
	require.NoError(t, err)
	assert.True(t, out.Success)
}

func TestNotInitialized(t *testing.T) {
	_, err := New(registry.New()).QueryByType(context.Background(), QueryByTypeParams{Type: "lad21"})
	var ni *registry.NotInitializedError
	assert.True(t, errors.As(err, &ni))
}

func TestRemoteErrorPropagates(t *testing.T) {
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := New(reg).Autocomplete(context.Background(), AutocompleteParams{Query: "cam"})
	assert.Equal(t, http.StatusUnauthorized, transport.StatusCode(err))
}
