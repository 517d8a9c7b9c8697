package config

import (
	"slices"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Vepler/http-sdk/pkg/registry"
)

// Config holds the CLI configuration.
type Config struct {
	APIKey      string            `yaml:"api_key" mapstructure:"api_key"`
	Environment string            `yaml:"environment" mapstructure:"environment"`
	TimeoutSecs int               `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit   float64           `yaml:"rate_limit" mapstructure:"rate_limit"`
	Hosts       map[string]string `yaml:"hosts" mapstructure:"hosts"`
	Headers     map[string]string `yaml:"headers" mapstructure:"headers"`
	Output      string            `yaml:"output" mapstructure:"output"`
	Batch       BatchConfig       `yaml:"batch" mapstructure:"batch"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// BatchConfig configures bulk address lookups.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Output formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Load reads configuration from file and environment. An empty file searches
// the working directory and $HOME/.vepler for config.yaml.
func Load(file string) (*Config, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.vepler")
	}

	v.SetEnvPrefix(registry.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_key", "")
	v.SetDefault("environment", string(registry.Production))
	v.SetDefault("timeout_secs", 0)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("output", OutputJSON)
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); file != "" || !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	return &cfg, nil
}

// Validate checks the values the CLI cannot recover from at request time.
func (c *Config) Validate() error {
	switch registry.Environment(c.Environment) {
	case "", registry.Production, registry.Development:
	default:
		return eris.Errorf("config: unknown environment %q", c.Environment)
	}
	if c.APIKey == "" {
		return eris.New("config: api_key is required (set VEPLER_API_KEY)")
	}
	if c.TimeoutSecs < 0 {
		return eris.New("config: timeout_secs must not be negative")
	}
	if c.RateLimit < 0 {
		return eris.New("config: rate_limit must not be negative")
	}
	if c.Batch.Concurrency < 1 || c.Batch.Concurrency > 32 {
		return eris.New("config: batch.concurrency must be between 1 and 32")
	}
	if c.Output != OutputJSON && c.Output != OutputYAML {
		return eris.Errorf("config: output must be %s or %s", OutputJSON, OutputYAML)
	}
	known := registry.KnownServices()
	for name := range c.Hosts {
		if !slices.Contains(known, name) {
			return eris.Errorf("config: hosts.%s is not a known service", name)
		}
	}
	return nil
}

// Registry converts c into registry configuration.
func (c *Config) Registry() (registry.Config, registry.Environment) {
	rc := registry.Config{
		APIKey:    c.APIKey,
		Timeout:   time.Duration(c.TimeoutSecs) * time.Second,
		LogLevel:  c.Log.Level,
		RateLimit: c.RateLimit,
	}
	if len(c.Headers) > 0 {
		rc.Headers = c.Headers
	}
	hosts := map[string]*string{
		registry.Property:          &rc.PropertyHost,
		registry.AreaReference:     &rc.AreaReferenceHost,
		registry.Crime:             &rc.CrimeHost,
		registry.Safety:            &rc.SafetyHost,
		registry.Rover:             &rc.RoverHost,
		registry.Schools:           &rc.SchoolsHost,
		registry.PlanningRegister:  &rc.PlanningRegisterHost,
		registry.Search:            &rc.SearchHost,
		registry.PropertyPredictor: &rc.PropertyPredictorHost,
		registry.Locator:           &rc.LocatorHost,
		registry.CouncilRegister:   &rc.CouncilRegisterHost,
	}
	for name, host := range c.Hosts {
		if dst, ok := hosts[name]; ok {
			*dst = host
		}
	}
	return rc, registry.Environment(c.Environment)
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
