package property

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// Area restricts a property query to a region. Build one with PointRadius,
// Polygon, MultiPolygon, Postcode, Outcode or LocationID.
type Area struct {
	kind       string
	radius     float64
	coords     any
	value      string
	locationID string
}

// MarshalJSON renders the tagged shape the query endpoint expects.
func (a Area) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case "point":
		return json.Marshal(struct {
			Type        string  `json:"type"`
			Radius      float64 `json:"radius"`
			Coordinates any     `json:"coordinates"`
		}{a.kind, a.radius, a.coords})
	case "polygon", "multipolygon":
		return json.Marshal(struct {
			Type        string `json:"type"`
			Coordinates any    `json:"coordinates"`
		}{a.kind, a.coords})
	case "postcode", "outcode":
		return json.Marshal(struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		}{a.kind, a.value})
	case "location":
		return json.Marshal(struct {
			LocationID string `json:"locationId"`
		}{a.locationID})
	}
	return nil, eris.New("property: empty area")
}

// PointRadius selects properties within radius metres of pt (lng, lat).
func PointRadius(pt *geom.Point, radius float64) Area {
	return Area{kind: "point", radius: radius, coords: [2]float64{pt.X(), pt.Y()}}
}

// Polygon selects properties inside the outer ring of p.
func Polygon(p *geom.Polygon) Area {
	return Area{kind: "polygon", coords: outer(p)}
}

// MultiPolygon selects properties inside any polygon of mp. Each polygon
// contributes its outer ring.
func MultiPolygon(mp *geom.MultiPolygon) Area {
	rings := make([][][2]float64, 0, mp.NumPolygons())
	for i := 0; i < mp.NumPolygons(); i++ {
		rings = append(rings, outer(mp.Polygon(i)))
	}
	return Area{kind: "multipolygon", coords: rings}
}

// Postcode selects properties in one full postcode.
func Postcode(pc string) Area {
	return Area{kind: "postcode", value: pc}
}

// Outcode selects properties in a postcode outward code, e.g. "SW1A".
func Outcode(oc string) Area {
	return Area{kind: "outcode", value: oc}
}

// LocationID selects properties by an area-reference location id.
func LocationID(id string) Area {
	return Area{kind: "location", locationID: id}
}

func outer(p *geom.Polygon) [][2]float64 {
	if p.NumLinearRings() == 0 {
		return [][2]float64{}
	}
	lr := p.LinearRing(0)
	out := make([][2]float64, 0, lr.NumCoords())
	for i := 0; i < lr.NumCoords(); i++ {
		c := lr.Coord(i)
		out = append(out, [2]float64{c.X(), c.Y()})
	}
	return out
}
