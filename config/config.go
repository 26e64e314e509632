package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "config/config.yaml"
	DefaultBaseURL    = "https://api.weatherstack.com"
)

type Config struct {
	App          AppConfig          `yaml:"app"`
	Log          LogConfig          `yaml:"log"`
	Weatherstack WeatherstackConfig `yaml:"weatherstack"`
	Stub         StubConfig         `yaml:"stub"`
}

type AppConfig struct {
	Name      string `yaml:"name" envconfig:"APP_NAME"`
	Version   string `yaml:"version" envconfig:"APP_VERSION"`
	Env       string `yaml:"env" envconfig:"APP_ENV"`
	SentryDSN string `yaml:"sentry_dsn" envconfig:"SENTRY_DSN"`
}

type LogConfig struct {
	Level string `yaml:"level" envconfig:"LOG_LEVEL"`
}

// WeatherstackConfig holds everything the API client needs. envconfig looks
// up the nested key first and then the tag itself, so tags carry the full
// variable name.
type WeatherstackConfig struct {
	BaseURL           string        `yaml:"base_url" envconfig:"WEATHERSTACK_BASE_URL"`
	APIKey            string        `yaml:"api_key" envconfig:"WEATHERSTACK_API_KEY"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"WEATHERSTACK_TIMEOUT"`
	MaxAttempts       int           `yaml:"max_attempts" envconfig:"WEATHERSTACK_MAX_ATTEMPTS"`
	BaseDelay         time.Duration `yaml:"base_delay" envconfig:"WEATHERSTACK_BASE_DELAY"`
	MaxDelay          time.Duration `yaml:"max_delay" envconfig:"WEATHERSTACK_MAX_DELAY"`
	RequestsPerSecond float64       `yaml:"requests_per_second" envconfig:"WEATHERSTACK_REQUESTS_PER_SECOND"`
	UserAgent         string        `yaml:"user_agent" envconfig:"WEATHERSTACK_USER_AGENT"`
}

// StubConfig drives the local weatherstack-compatible server.
type StubConfig struct {
	Addr string `yaml:"addr" envconfig:"STUB_ADDR"`
	Key  string `yaml:"key" envconfig:"STUB_KEY"`
	// Plan is "free" or "paid"; the free plan rejects historical and forecast.
	Plan string `yaml:"plan" envconfig:"STUB_PLAN"`
}

// ConfigProvider loads and validates a configuration.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider layers defaults, an optional .env file, an optional YAML
// file and the process environment, in that order.
type FileConfigProvider struct {
	path    string
	envFile string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path, envFile: ".env"}
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weatherstack-check",
			Version: "1.0.0",
			Env:     "development",
		},
		Log: LogConfig{Level: "info"},
		Weatherstack: WeatherstackConfig{
			BaseURL:     DefaultBaseURL,
			Timeout:     10 * time.Second,
			MaxAttempts: 3,
			BaseDelay:   time.Second,
			MaxDelay:    8 * time.Second,
			UserAgent:   "weatherstack-check/1.0",
		},
		Stub: StubConfig{
			Addr: ":8089",
			Key:  "stub-key",
			Plan: "paid",
		},
	}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := Defaults()

	if err := godotenv.Load(p.envFile); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to read env file")
	}

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", cnf); err != nil {
		return nil, errors.Wrap(err, "error environment variable parsing")
	}

	cnf.Weatherstack.BaseURL = strings.TrimRight(cnf.Weatherstack.BaseURL, "/")

	return cnf, nil
}

// loadFromFile ignores a missing file; the defaults and environment still apply.
func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read config file %s", p.path)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return errors.Wrapf(err, "failed to parse YAML config %s", p.path)
	}

	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	switch {
	case config.App.Name == "":
		return errors.New("app.name is required")
	case config.Weatherstack.BaseURL == "":
		return errors.New("weatherstack.base_url is required")
	case config.Weatherstack.Timeout <= 0:
		return errors.New("weatherstack.timeout must be positive")
	case config.Weatherstack.MaxAttempts < 1:
		return errors.New("weatherstack.max_attempts must be at least 1")
	case config.Weatherstack.BaseDelay < 0 || config.Weatherstack.MaxDelay < config.Weatherstack.BaseDelay:
		return errors.New("weatherstack.max_delay must not be below weatherstack.base_delay")
	case config.Weatherstack.RequestsPerSecond < 0:
		return errors.New("weatherstack.requests_per_second must not be negative")
	case config.Stub.Plan != "" && config.Stub.Plan != "free" && config.Stub.Plan != "paid":
		return errors.Errorf("stub.plan must be free or paid, got %q", config.Stub.Plan)
	}

	return nil
}

// NewConfig loads the configuration from CONFIG_PATH, or config/config.yaml.
func NewConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultConfigPath
	}
	return NewConfigWithProvider(NewFileConfigProvider(path))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cnf, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}
