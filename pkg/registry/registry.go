// Package registry holds the per-service client handles and the common request
// settings shared by every endpoint wrapper.
//
// A Registry moves between two states. It starts uninitialized; Initialize
// validates and merges the caller's Config with an environment defaults table,
// builds one client per known service, and publishes them together. Reset
// returns it to uninitialized. Calling Initialize on an initialized Registry is
// a logged no-op.
package registry

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Vepler/http-sdk/pkg/transport"
)

// Config carries caller overrides. Zero values mean "use the environment default".
type Config struct {
	APIKey   string
	Timeout  time.Duration
	LogLevel string
	// Headers replaces the default header set; it is not merged with it.
	Headers map[string]string

	PropertyHost          string
	AreaReferenceHost     string
	CrimeHost             string
	SafetyHost            string
	RoverHost             string
	SchoolsHost           string
	PlanningRegisterHost  string
	SearchHost            string
	PropertyPredictorHost string
	LocatorHost           string
	CouncilRegisterHost   string

	// RateLimit caps requests per second per service. Zero disables it.
	RateLimit float64
	// Metrics, when set, receives request counters and latency histograms.
	Metrics prometheus.Registerer
	// HTTPClient replaces the pooled default client shared by every service.
	HTTPClient *http.Client
}

func (c Config) hostOverride(service string) string {
	switch service {
	case Property:
		return c.PropertyHost
	case AreaReference:
		return c.AreaReferenceHost
	case Crime:
		return c.CrimeHost
	case Safety:
		return c.SafetyHost
	case Rover:
		return c.RoverHost
	case Schools:
		return c.SchoolsHost
	case PlanningRegister:
		return c.PlanningRegisterHost
	case Search:
		return c.SearchHost
	case PropertyPredictor:
		return c.PropertyPredictorHost
	case Locator:
		return c.LocatorHost
	case CouncilRegister:
		return c.CouncilRegisterHost
	}
	return ""
}

// Settings is the resolved common configuration applied to every client.
type Settings struct {
	Environment Environment
	Timeout     time.Duration
	LogLevel    string
	Headers     map[string]string
	APIKey      string
}

func (s Settings) clone() Settings {
	h := make(map[string]string, len(s.Headers))
	for k, v := range s.Headers {
		h[k] = v
	}
	s.Headers = h
	return s
}

// Provider hands out service clients by name. Endpoint wrappers depend on it.
type Provider interface {
	Client(name string) (transport.Client, error)
}

// Factory builds one service client.
type Factory func(cfg transport.Config, opts ...transport.Option) (transport.Client, error)

// Option configures a Registry.
type Option func(*Registry)

// WithFactory replaces transport.New as the client constructor.
func WithFactory(f Factory) Option {
	return func(r *Registry) {
		if f != nil {
			r.factory = f
		}
	}
}

// WithLogger sets the logger used for registry events and handed to clients.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// Registry maps service names to configured clients.
type Registry struct {
	mu          sync.RWMutex
	initialized bool
	settings    Settings
	clients     map[string]transport.Client
	order       []string

	factory Factory
	log     *zap.Logger
}

// New creates an uninitialized registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		factory: transport.New,
		log:     zap.L(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ Provider = (*Registry)(nil)

// Initialize merges cfg with the defaults for env and builds every service
// client. It returns a *ConfigurationError when no API key is supplied and an
// *InitializationError when a client cannot be built; in both cases the
// registry is left untouched.
func (r *Registry) Initialize(cfg Config, env Environment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		r.log.Warn("registry already initialized; call Reset before initializing again",
			zap.String("environment", string(r.settings.Environment)),
		)
		return nil
	}

	if env == "" {
		env = Production
	}
	defaults, err := DefaultsFor(env)
	if err != nil {
		return err
	}

	settings := Settings{
		Environment: env,
		Timeout:     defaults.Timeout,
		LogLevel:    defaults.LogLevel,
		Headers:     defaults.Headers,
		APIKey:      cfg.APIKey,
	}
	if cfg.Timeout > 0 {
		settings.Timeout = cfg.Timeout
	}
	if cfg.LogLevel != "" {
		settings.LogLevel = cfg.LogLevel
	}
	if cfg.Headers != nil {
		settings.Headers = cfg.Headers
	}
	settings = settings.clone()

	if settings.APIKey == "" {
		return &ConfigurationError{Reason: "API key required"}
	}

	opts := []transport.Option{
		transport.WithLogger(r.log),
		transport.WithRateLimit(cfg.RateLimit),
		transport.WithHTTPClient(cfg.HTTPClient),
	}
	if cfg.Metrics != nil {
		m, err := transport.NewMetrics(cfg.Metrics)
		if err != nil {
			return &InitializationError{Service: "metrics", Err: err}
		}
		opts = append(opts, transport.WithMetrics(m))
	}

	names := KnownServices()
	clients := make(map[string]transport.Client, len(names))
	for _, name := range names {
		host := cfg.hostOverride(name)
		if host == "" {
			host = defaults.Hosts[name]
		}
		c, err := r.factory(transport.Config{
			Service:  name,
			Host:     host,
			Timeout:  settings.Timeout,
			LogLevel: settings.LogLevel,
			Headers:  settings.Headers,
			APIKey:   settings.APIKey,
		}, opts...)
		if err != nil {
			r.log.Error("registry initialization failed", zap.String("service", name), zap.Error(err))
			return &InitializationError{Service: name, Err: err}
		}
		clients[name] = c
	}

	r.clients = clients
	r.order = names
	r.settings = settings
	r.initialized = true

	r.log.Debug("registry initialized",
		zap.String("environment", string(env)),
		zap.Int("services", len(names)),
		zap.Duration("timeout", settings.Timeout),
	)
	return nil
}

// Client returns the client registered under name.
func (r *Registry) Client(name string) (transport.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.initialized {
		return nil, &NotInitializedError{}
	}
	c, ok := r.clients[name]
	if !ok {
		return nil, &UnknownServiceError{Name: name, Available: append([]string(nil), r.order...)}
	}
	return c, nil
}

// Settings returns a copy of the merged common configuration.
func (r *Registry) Settings() (Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.initialized {
		return Settings{}, &NotInitializedError{}
	}
	return r.settings.clone(), nil
}

// Initialized reports whether Initialize has succeeded since the last Reset.
func (r *Registry) Initialized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.initialized
}

// Services returns the registered service names in registration order.
// It is empty before Initialize.
func (r *Registry) Services() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Reset drops every client and the common settings. It is safe to call on an
// uninitialized registry.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clients = nil
	r.order = nil
	r.settings = Settings{}
	r.initialized = false
}
