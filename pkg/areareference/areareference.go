// Package areareference wraps the area-reference service: statistical and
// administrative geographies, their hierarchy, spatial relationships, and the
// metric values attached to them.
package areareference

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/registry"
)

// Service issues area-reference requests through a registry.
type Service struct {
	reg registry.Provider
}

// New returns a Service bound to reg.
func New(reg registry.Provider) *Service {
	return &Service{reg: reg}
}

func (s *Service) query(ctx context.Context, path string, q *params.Values, out any) error {
	c, err := s.reg.Client(registry.AreaReference)
	if err != nil {
		return err
	}
	return c.Query(ctx, path, q.URLValues(), out)
}

// Area is one geographic entity as returned by the lookup endpoints.
type Area struct {
	ID       string          `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Distance float64         `json:"distance,omitempty"`
	Lat      float64         `json:"lat,omitempty"`
	Long     float64         `json:"long,omitempty"`
	Geometry json.RawMessage `json:"geometry,omitempty"`
}

// Shape decodes the area's GeoJSON geometry. It returns nil when the response
// carried no geometry.
func (a Area) Shape() (geom.T, error) {
	return DecodeGeometry(a.Geometry)
}

// DecodeGeometry decodes a raw GeoJSON geometry. Empty and null input decode to nil.
func DecodeGeometry(raw json.RawMessage) (geom.T, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	var g geom.T
	if err := geojson.Unmarshal(raw, &g); err != nil {
		return nil, eris.Wrap(err, "areareference: decode geometry")
	}
	return g, nil
}

// Response is the generic success/result envelope used across the service.
type Response struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
}
