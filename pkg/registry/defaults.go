package registry

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment selects a baked-in defaults table.
type Environment string

// Supported environments.
const (
	Production  Environment = "production"
	Development Environment = "development"
)

// Service names, in registration order.
const (
	Property          = "property"
	AreaReference     = "area-reference"
	Crime             = "crime"
	Safety            = "safety"
	Rover             = "rover"
	Schools           = "schools"
	PlanningRegister  = "planning-register"
	Search            = "search"
	PropertyPredictor = "property-predictor"
	Locator           = "locator"
	CouncilRegister   = "council-register"
)

// KnownServices lists every service Initialize builds a client for.
func KnownServices() []string {
	return []string{
		Property,
		AreaReference,
		Crime,
		Safety,
		Rover,
		Schools,
		PlanningRegister,
		Search,
		PropertyPredictor,
		Locator,
		CouncilRegister,
	}
}

// EnvPrefix prefixes the per-service host environment variables, e.g.
// VEPLER_AREA_REFERENCE_HOST.
const EnvPrefix = "VEPLER"

// Defaults is the fully-populated table for one environment.
type Defaults struct {
	Hosts    map[string]string
	Timeout  time.Duration
	LogLevel string
	Headers  map[string]string
}

var builtinHosts = map[string]string{
	Property:          "https://api2.propbar.co.uk/property",
	AreaReference:     "https://api2.propbar.co.uk/area-reference",
	Crime:             "https://api2.propbar.co.uk/crime",
	Safety:            "https://api2.propbar.co.uk/safety",
	Rover:             "https://api2.propbar.co.uk/rover",
	Schools:           "https://api2.vepler.co.uk/schools",
	PlanningRegister:  "https://api2.propbar.co.uk/planning-register",
	Search:            "https://api2.propbar.co.uk/search",
	PropertyPredictor: "https://api2.propbar.co.uk/property-predictor",
	Locator:           "https://api2.propbar.co.uk/locator",
	CouncilRegister:   "https://api2.propbar.co.uk/council-register",
}

// HostEnvVar returns the environment variable that overrides service's default host.
func HostEnvVar(service string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(service, "-", "_")) + "_HOST"
}

// DefaultsFor returns the defaults table for env. Host entries are replaced by
// their VEPLER_<SERVICE>_HOST environment variable when set.
func DefaultsFor(env Environment) (Defaults, error) {
	if env == "" {
		env = Production
	}

	d := Defaults{
		Hosts:   make(map[string]string, len(builtinHosts)),
		Timeout: 60 * time.Second,
		Headers: map[string]string{"Content-Type": "application/json"},
	}
	switch env {
	case Production:
		d.LogLevel = "info"
	case Development:
		d.LogLevel = "debug"
	default:
		return Defaults{}, &ConfigurationError{Reason: "unknown environment " + string(env)}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	for _, name := range KnownServices() {
		key := name + "-host"
		v.SetDefault(key, builtinHosts[name])
		d.Hosts[name] = v.GetString(key)
	}
	return d, nil
}
