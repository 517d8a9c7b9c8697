package poi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/Vepler/http-sdk/internal/sdktest"
	"github.com/Vepler/http-sdk/pkg/params"
)

func TestNearest(t *testing.T) {
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/area-reference/poi/nearest", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "school,station", q.Get("types"))
		assert.Equal(t, "3", q.Get("limit"))
		assert.False(t, q.Has("radius"))
		sdktest.JSON(t, w, map[string]any{
			"result": []map[string]any{{"id": "p1", "name": "Bank", "type": "station", "distance": 120.5}},
			"count":  1,
		})
	}))

	out, err := New(reg).Nearest(context.Background(), NearestParams{
		Lat:   51.51,
		Lng:   -0.09,
		Types: []string{"school", "station"},
		Limit: params.Ptr(3),
	})
	require.NoError(t, err)
	require.Len(t, out.Result, 1)
	assert.Equal(t, "Bank", out.Result[0].Name)
}

func TestNearest_RequiresTypes(t *testing.T) {
	_, err := New(sdktest.Unreachable(t)).Nearest(context.Background(), NearestParams{Lat: 1, Lng: 2})
	require.Error(t, err)
}

func TestTiles(t *testing.T) {
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/area-reference/poi/tiles", r.URL.Path)
		assert.Equal(t, "10/512/512,10/513/512", r.URL.Query().Get("tiles"))
		assert.Equal(t, "geojson", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte(`{
			"type": "FeatureCollection",
			"success": true,
			"meta": {"totalFeatures": 1, "tilesQueried": 2, "executionTimeMs": 4.2},
			"features": [{
				"type": "Feature",
				"geometry": {"type": "Point", "coordinates": [-0.1278, 51.5074]},
				"properties": {"name": "Cafe", "category": "cafe"}
			}]
		}`))
	}))

	out, err := New(reg).Tiles(context.Background(), TilesParams{
		Tiles:  []Tile{{Z: 10, X: 512, Y: 512}, {Z: 10, X: 513, Y: 512}},
		Format: "geojson",
	})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 2, out.Meta.TilesQueried)
	require.Len(t, out.Features.Features, 1)

	f := out.Features.Features[0]
	assert.Equal(t, "Cafe", f.Properties["name"])
	pt, ok := f.Geometry.(*geom.Point)
	require.True(t, ok)
	assert.InDelta(t, 51.5074, pt.Y(), 1e-9)
}

func TestTiles_NotAFeatureCollection(t *testing.T) {
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"type": "Feature", "success": true}`))
	}))

	_, err := New(reg).Tiles(context.Background(), TilesParams{Tiles: []Tile{{Z: 1}}})
	require.Error(t, err)
}

func TestTile_String(t *testing.T) {
	assert.Equal(t, "14/8185/5447", Tile{Z: 14, X: 8185, Y: 5447}.String())
}
