// Package vepler bundles every service wrapper behind one initialized registry.
//
//	sdk, err := vepler.New(registry.Config{APIKey: key}, registry.Production)
//	if err != nil {
//		return err
//	}
//	defer sdk.Close()
//	areas, err := sdk.AreaReference.Within(ctx, areareference.WithinParams{...})
package vepler

import (
	"github.com/Vepler/http-sdk/pkg/areareference"
	"github.com/Vepler/http-sdk/pkg/connectivity"
	"github.com/Vepler/http-sdk/pkg/counciltax"
	"github.com/Vepler/http-sdk/pkg/crime"
	"github.com/Vepler/http-sdk/pkg/demographics"
	"github.com/Vepler/http-sdk/pkg/h3"
	"github.com/Vepler/http-sdk/pkg/location"
	"github.com/Vepler/http-sdk/pkg/planning"
	"github.com/Vepler/http-sdk/pkg/poi"
	"github.com/Vepler/http-sdk/pkg/predictor"
	"github.com/Vepler/http-sdk/pkg/property"
	"github.com/Vepler/http-sdk/pkg/registry"
	"github.com/Vepler/http-sdk/pkg/safety"
	"github.com/Vepler/http-sdk/pkg/schools"
	"github.com/Vepler/http-sdk/pkg/search"
)

// SDK exposes one field per service.
type SDK struct {
	Property      *property.Service
	AreaReference *areareference.Service
	Crime         *crime.Service
	Safety        *safety.Service
	Schools       *schools.Service
	Planning      *planning.Service
	Location      *location.Service
	POI           *poi.Service
	Demographics  *demographics.Service
	Connectivity  *connectivity.Service
	Search        *search.Service
	Predictor     *predictor.Service
	CouncilTax    *counciltax.Service
	H3            *h3.Service

	reg *registry.Registry
}

// New initializes a fresh registry with cfg for env and wires every service to it.
func New(cfg registry.Config, env registry.Environment, opts ...registry.Option) (*SDK, error) {
	reg := registry.New(opts...)
	if err := reg.Initialize(cfg, env); err != nil {
		return nil, err
	}
	return Wrap(reg), nil
}

// Wrap wires every service to an existing registry. The registry may be
// initialized later; calls fail with a NotInitializedError until it is.
func Wrap(reg *registry.Registry) *SDK {
	return &SDK{
		Property:      property.New(reg),
		AreaReference: areareference.New(reg),
		Crime:         crime.New(reg),
		Safety:        safety.New(reg),
		Schools:       schools.New(reg),
		Planning:      planning.New(reg),
		Location:      location.New(reg),
		POI:           poi.New(reg),
		Demographics:  demographics.New(reg),
		Connectivity:  connectivity.New(reg),
		Search:        search.New(reg),
		Predictor:     predictor.New(reg),
		CouncilTax:    counciltax.New(reg),
		H3:            h3.New(reg),
		reg:           reg,
	}
}

// Registry returns the underlying registry.
func (s *SDK) Registry() *registry.Registry {
	return s.reg
}

// Close resets the registry. Subsequent calls fail until it is initialized again.
func (s *SDK) Close() {
	s.reg.Reset()
}
