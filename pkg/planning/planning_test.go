package planning

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vepler/http-sdk/internal/sdktest"
)

func TestQueryApplications(t *testing.T) {
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/planning-register/application/query", r.URL.Path)
		assert.Equal(t, map[string]any{
			"provider": "example-council",
			"limit":    float64(10),
			"filters":  map[string]any{"status": "pending"},
		}, sdktest.DecodeBody(t, r))

		sdktest.JSON(t, w, map[string]any{
			"success": true,
			"result": []map[string]any{{
				"id":          "app-123",
				"reference":   "APP/2023/001",
				"coordinates": map[string]any{"type": "Point", "coordinates": []float64{-1.234, 53.456}},
			}},
			"meta": map[string]any{"count": 1, "hasMore": false},
		})
	}))

	out, err := New(reg).QueryApplications(context.Background(), ApplicationQuery{
		Provider: "example-council",
		Limit:    10,
		Filters:  map[string]any{"status": "pending"},
	})
	require.NoError(t, err)
	require.Len(t, out.Result, 1)

	app := out.Result[0]
	require.NotNil(t, app.Coordinates)
	pt := app.Coordinates.Geom()
	assert.InDelta(t, -1.234, pt.X(), 1e-9)
	assert.InDelta(t, 53.456, pt.Y(), 1e-9)
	assert.Equal(t, 4326, pt.SRID())
}

func TestApplicationByID(t *testing.T) {
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/planning-register/application/app-123", r.URL.Path)
		sdktest.JSON(t, w, map[string]any{"success": true, "result": map[string]any{"id": "app-123", "description": "Extension"}})
	}))

	out, err := New(reg).ApplicationByID(context.Background(), "app-123")
	require.NoError(t, err)
	assert.Equal(t, "Extension", out.Result.Description)

	_, err = New(sdktest.Unreachable(t)).ApplicationByID(context.Background(), "")
	assert.Error(t, err)
}

func TestApplicationByID_EscapesID(t *testing.T) {
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/planning-register/application/APP%2F2023%2F001", r.URL.EscapedPath())
		sdktest.JSON(t, w, map[string]any{"success": true, "result": map[string]any{"id": "APP/2023/001"}})
	}))

	out, err := New(reg).ApplicationByID(context.Background(), "APP/2023/001")
	require.NoError(t, err)
	assert.Equal(t, "APP/2023/001", out.Result.ID)
}

func TestMapTile(t *testing.T) {
	tile := []byte{0x1a, 0x0b, 0x0a, 0x05}
	reg := sdktest.Registry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/planning-register/tiles/15/16271/10771", r.URL.Path)
		assert.Equal(t, TileContentType, r.Header.Get("Accept"))
		w.Header().Set("Content-Type", TileContentType)
		_, _ = w.Write(tile)
	}))

	got, err := New(reg).MapTile(context.Background(), TileCoord{Z: 15, X: 16271, Y: 10771})
	require.NoError(t, err)
	assert.Equal(t, tile, got)
}

func TestTileCoord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tile    TileCoord
		wantErr string
	}{
		{"origin", TileCoord{}, ""},
		{"max_zoom_edge", TileCoord{Z: MaxZoom, X: 1<<MaxZoom - 1, Y: 0}, ""},
		{"negative_zoom", TileCoord{Z: -1}, `"z"`},
		{"zoom_too_deep", TileCoord{Z: MaxZoom + 1}, `"z"`},
		{"x_out_of_range", TileCoord{Z: 2, X: 4}, `"x"`},
		{"y_negative", TileCoord{Z: 2, Y: -1}, `"y"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tile.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := New(sdktest.Unreachable(t)).MapTile(context.Background(), TileCoord{Z: 1, X: 2})
	assert.Error(t, err)
}

func TestTileAt(t *testing.T) {
	assert.Equal(t, TileCoord{Z: 0, X: 0, Y: 0}, TileAt(-1.234, 53.456, 0))
	assert.Equal(t, TileCoord{Z: 1, X: 0, Y: 0}, TileAt(-1.234, 53.456, 1))
	assert.Equal(t, TileCoord{Z: 1, X: 1, Y: 1}, TileAt(151.2, -33.9, 1))
	// Longitude 180 wraps past the last column and is clamped.
	assert.Equal(t, TileCoord{Z: 2, X: 3, Y: 1}, TileAt(180, 10, 2))
}

func TestTileAt_Poles(t *testing.T) {
	assert.Equal(t, TileCoord{Z: 2, X: 2, Y: 0}, TileAt(0, 90, 2))
	assert.Equal(t, TileCoord{Z: 2, X: 2, Y: 3}, TileAt(0, -90, 2))
	assert.Equal(t, TileCoord{Z: 10, X: 512, Y: 1023}, TileAt(0, -89.9, 10))
	assert.Equal(t, TileCoord{Z: 0}, TileAt(0, 90, 0))
}
