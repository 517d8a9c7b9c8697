// Package poi wraps the points-of-interest endpoints of the area-reference
// service: nearest-neighbour lookup and slippy-map tile extraction.
package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/registry"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// Service issues POI requests through a registry.
type Service struct {
	reg registry.Provider
}

// New returns a Service bound to reg.
func New(reg registry.Provider) *Service {
	return &Service{reg: reg}
}

// NearestParams finds the POIs of Types closest to (Lat, Lng).
type NearestParams struct {
	Lat    float64
	Lng    float64
	Types  []string
	Limit  *int
	Radius *float64
}

// Entity is one point of interest.
type Entity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Code     string `json:"code"`
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
	Distance float64 `json:"distance"`
}

// NearestResponse echoes the query and lists matches by distance.
type NearestResponse struct {
	Query struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
		Radius float64 `json:"radius"`
		Limit  int     `json:"limit"`
		Types  string  `json:"types"`
	} `json:"query"`
	Result []Entity `json:"result"`
	Count  int      `json:"count"`
}

// Nearest returns the POIs nearest to a point.
func (s *Service) Nearest(ctx context.Context, p NearestParams) (*NearestResponse, error) {
	if err := validate.Required("types", len(p.Types) > 0); err != nil {
		return nil, err
	}

	c, err := s.reg.Client(registry.AreaReference)
	if err != nil {
		return nil, err
	}

	q := params.New().
		Float("lat", &p.Lat).
		Float("lng", &p.Lng).
		List("types", p.Types).
		Int("limit", p.Limit).
		Float("radius", p.Radius)

	var out NearestResponse
	if err := c.Query(ctx, "/poi/nearest", q.URLValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tile addresses one slippy-map tile.
type Tile struct {
	Z, X, Y int
}

func (t Tile) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// TilesParams selects the tiles to extract POIs from.
type TilesParams struct {
	Tiles           []Tile
	Format          string
	Categories      []string
	Limit           *int
	IncludeMetadata *bool
}

// TilesMeta describes how a tile query was executed.
type TilesMeta struct {
	TotalFeatures   int      `json:"totalFeatures"`
	TilesQueried    int      `json:"tilesQueried"`
	LimitPerTile    int      `json:"limitPerTile,omitempty"`
	CategoryFilters []string `json:"categoryFilters,omitempty"`
	ExecutionTimeMs float64  `json:"executionTimeMs"`
}

// TilesResponse is a GeoJSON FeatureCollection with a success flag and metadata.
type TilesResponse struct {
	Success  bool
	Meta     TilesMeta
	Features *geojson.FeatureCollection
}

// UnmarshalJSON decodes the envelope fields and the feature collection from
// the same document.
func (r *TilesResponse) UnmarshalJSON(data []byte) error {
	var env struct {
		Success bool      `json:"success"`
		Meta    TilesMeta `json:"meta"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	fc := &geojson.FeatureCollection{}
	if err := fc.UnmarshalJSON(data); err != nil {
		return eris.Wrap(err, "poi: decode feature collection")
	}
	r.Success = env.Success
	r.Meta = env.Meta
	r.Features = fc
	return nil
}

// Tiles returns the POIs inside each requested tile as GeoJSON features.
func (s *Service) Tiles(ctx context.Context, p TilesParams) (*TilesResponse, error) {
	if err := validate.Required("tiles", len(p.Tiles) > 0); err != nil {
		return nil, err
	}

	c, err := s.reg.Client(registry.AreaReference)
	if err != nil {
		return nil, err
	}

	tiles := make([]string, len(p.Tiles))
	for i, t := range p.Tiles {
		tiles[i] = t.String()
	}
	q := params.New().
		Set("tiles", strings.Join(tiles, ",")).
		String("format", p.Format).
		List("categories", p.Categories).
		Int("limit", p.Limit).
		Bool("includeMetadata", p.IncludeMetadata)

	var out TilesResponse
	if err := c.Query(ctx, "/poi/tiles", q.URLValues(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
