// Package planning wraps the planning-register service: planning application
// search, application detail, and vector map tiles.
package planning

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"

	"github.com/twpayne/go-geom"

	"github.com/Vepler/http-sdk/pkg/registry"
	"github.com/Vepler/http-sdk/pkg/transport"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// MaxZoom is the deepest tile zoom level served.
const MaxZoom = 22

// TileContentType is requested for map tiles.
const TileContentType = "application/vnd.mapbox-vector-tile"

// Service issues planning-register requests through a registry.
type Service struct {
	reg registry.Provider
}

// New returns a Service bound to reg.
func New(reg registry.Provider) *Service {
	return &Service{reg: reg}
}

func (s *Service) client() (transport.Client, error) {
	return s.reg.Client(registry.PlanningRegister)
}

// ApplicationQuery filters planning applications. Filters is passed through
// as-is, e.g. {"status": "pending"}.
type ApplicationQuery struct {
	Provider string         `json:"provider,omitempty"`
	Limit    int            `json:"limit,omitempty"`
	Offset   int            `json:"offset,omitempty"`
	Filters  map[string]any `json:"filters,omitempty"`
	Sort     string         `json:"sort,omitempty"`
}

// Point is a GeoJSON point as embedded in application records.
type Point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Geom converts p to a go-geom point in (lng, lat) order.
func (p Point) Geom() *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{p.Coordinates[0], p.Coordinates[1]}).SetSRID(4326)
}

// Application is a planning application summary.
type Application struct {
	ID          string          `json:"id"`
	Provider    string          `json:"provider"`
	Key         string          `json:"key"`
	Reference   string          `json:"reference"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	Coordinates *Point          `json:"coordinates,omitempty"`
	Address     json.RawMessage `json:"address,omitempty"`
	Documents   json.RawMessage `json:"documents,omitempty"`
}

// QueryResponse is one page of applications.
type QueryResponse struct {
	Success bool          `json:"success"`
	Result  []Application `json:"result"`
	Meta    struct {
		Count   int  `json:"count"`
		HasMore bool `json:"hasMore"`
		Limit   int  `json:"limit"`
		Offset  int  `json:"offset"`
	} `json:"meta"`
}

// QueryApplications searches planning applications.
func (s *Service) QueryApplications(ctx context.Context, q ApplicationQuery) (*QueryResponse, error) {
	c, err := s.client()
	if err != nil {
		return nil, err
	}
	var out QueryResponse
	if err := c.Post(ctx, "/application/query", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApplicationResponse wraps one application.
type ApplicationResponse struct {
	Success bool        `json:"success"`
	Result  Application `json:"result"`
}

// ApplicationByID returns the full record of one application.
func (s *Service) ApplicationByID(ctx context.Context, applicationID string) (*ApplicationResponse, error) {
	if err := validate.Required("applicationId", applicationID != ""); err != nil {
		return nil, err
	}
	c, err := s.client()
	if err != nil {
		return nil, err
	}
	var out ApplicationResponse
	if err := c.Query(ctx, "/application/"+url.PathEscape(applicationID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TileCoord addresses one slippy-map tile.
type TileCoord struct {
	Z, X, Y int
}

func (t TileCoord) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// Validate checks that Z is within [0, MaxZoom] and X, Y within [0, 2^Z).
func (t TileCoord) Validate() error {
	if err := validate.Range("z", &t.Z, 0, MaxZoom); err != nil {
		return err
	}
	last := 1<<uint(t.Z) - 1
	return validate.First(
		validate.Range("x", &t.X, 0, last),
		validate.Range("y", &t.Y, 0, last),
	)
}

// MaxLatitude bounds the Web Mercator projection.
const MaxLatitude = 85.05112878

// TileAt returns the tile containing the WGS84 point (lng, lat) at zoom z.
// Latitudes beyond ±MaxLatitude map to the edge rows.
func TileAt(lng, lat float64, z int) TileCoord {
	lat = max(-MaxLatitude, min(lat, MaxLatitude))
	n := math.Exp2(float64(z))
	x := int(math.Floor((lng + 180) / 360 * n))
	rad := lat * math.Pi / 180
	y := int(math.Floor((1 - math.Log(math.Tan(rad)+1/math.Cos(rad))/math.Pi) / 2 * n))
	clamp := func(v int) int { return max(0, min(v, int(n)-1)) }
	return TileCoord{Z: z, X: clamp(x), Y: clamp(y)}
}

// MapTile returns the raw vector tile bytes for t.
func (s *Service) MapTile(ctx context.Context, t TileCoord) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	c, err := s.client()
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, "/tiles/"+t.String(), transport.WithAccept(TileContentType))
}
