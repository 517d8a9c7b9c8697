// Package predictor wraps the property-predictor service, which estimates
// price, bedrooms, floor area and similar attributes for a property.
package predictor

import (
	"context"

	"github.com/twpayne/go-geom"

	"github.com/Vepler/http-sdk/pkg/registry"
	"github.com/Vepler/http-sdk/pkg/validate"
)

// Transaction types.
const (
	TransactionSale   = "sale"
	TransactionRental = "rental"
)

// Service issues prediction requests through a registry.
type Service struct {
	reg registry.Provider
}

// New returns a Service bound to reg.
func New(reg registry.Provider) *Service {
	return &Service{reg: reg}
}

// Request describes the property to predict for. The property is located by
// Postcode or by Longitude and Latitude together.
type Request struct {
	// Target names the attribute(s) to predict, e.g. "price" or "price,beds".
	Target       string   `json:"target"`
	PropertyType string   `json:"propertyType,omitempty"`
	Postcode     string   `json:"postcode,omitempty"`
	FloorArea    *float64 `json:"floorArea,omitempty"`
	Beds         *int     `json:"beds,omitempty"`
	Baths        *int     `json:"baths,omitempty"`
	Condition    string   `json:"condition,omitempty"`
	YearBuilt    *int     `json:"yearBuilt,omitempty"`
	EPC          string   `json:"epc,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	// TransactionType defaults to TransactionSale.
	TransactionType string   `json:"transactionType"`
	Detailed        bool     `json:"detailed"`
	Longitude       *float64 `json:"longitude,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
}

// At sets Longitude and Latitude from a WGS84 point.
func (r *Request) At(pt *geom.Point) *Request {
	lng, lat := pt.X(), pt.Y()
	r.Longitude, r.Latitude = &lng, &lat
	return r
}

// Prediction is the estimate for one target.
type Prediction struct {
	Value      float64            `json:"value"`
	Lower      *float64           `json:"lower,omitempty"`
	Upper      *float64           `json:"upper,omitempty"`
	Confidence float64            `json:"confidence,omitempty"`
	Unit       string             `json:"unit,omitempty"`
	Features   map[string]float64 `json:"features,omitempty"`
}

// Response maps each target to its prediction.
type Response struct {
	Success bool                  `json:"success"`
	Result  map[string]Prediction `json:"result"`
	Meta    map[string]any        `json:"meta,omitempty"`
}

// PredictMultiTarget predicts every attribute named in r.Target.
func (s *Service) PredictMultiTarget(ctx context.Context, r Request) (*Response, error) {
	hasCoords := r.Longitude != nil && r.Latitude != nil
	if err := validate.First(
		validate.Required("target", r.Target != ""),
		validate.EitherOr("postcode", "longitude and latitude", r.Postcode != "", hasCoords),
	); err != nil {
		return nil, err
	}
	c, err := s.reg.Client(registry.PropertyPredictor)
	if err != nil {
		return nil, err
	}

	if r.TransactionType == "" {
		r.TransactionType = TransactionSale
	}
	var out Response
	if err := c.Post(ctx, "/predict/multi-target", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
