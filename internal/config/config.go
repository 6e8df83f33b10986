package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mrwolf/drmind/internal/llm"
)

// Config holds all application configuration
type Config struct {
	Server    Server    `mapstructure:"server"`
	DB        DB        `mapstructure:"db"`
	Logging   Logging   `mapstructure:"logging"`
	Backup    Backup    `mapstructure:"backup"`
	Providers Providers `mapstructure:"providers"`
	Submit    Submit    `mapstructure:"submit"`
	Timezone  string    `mapstructure:"timezone"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type DB struct {
	Path string `mapstructure:"path"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Backup struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// Providers configures the three text generation backends in priority order
type Providers struct {
	HealthInterval time.Duration `mapstructure:"health_interval"`
	HuggingFace    Provider      `mapstructure:"huggingface"`
	Cohere         Provider      `mapstructure:"cohere"`
	Gemini         Provider      `mapstructure:"gemini"`
}

// Provider is the injected {endpoint, credential, timeout} for one backend
type Provider struct {
	Endpoint   string `mapstructure:"endpoint"`
	Credential string `mapstructure:"credential"`
	Model      string `mapstructure:"model"`
	TimeoutMs  int    `mapstructure:"timeout_ms"`
}

// Settings converts the provider block into adapter settings
func (p Provider) Settings() llm.Settings {
	return llm.Settings{
		Endpoint:   p.Endpoint,
		Credential: p.Credential,
		Model:      p.Model,
		Timeout:    time.Duration(p.TimeoutMs) * time.Millisecond,
	}
}

type Submit struct {
	RateLimit  int           `mapstructure:"rate_limit"`
	RateWindow time.Duration `mapstructure:"rate_window"`
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Load reads .env, an optional YAML file and DRMIND_* environment variables.
// configFile may be empty, in which case ./drmind.yaml is used if present.
func Load(configFile string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("drmind")
		v.SetConfigType("yaml")
	}

	setDefaults(v)
	if err := bindEnvironmentVariables(v); err != nil {
		return nil, err
	}

	v.SetEnvPrefix("DRMIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "5000")
	v.SetDefault("db.path", "drmind.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("backup.enabled", true)
	v.SetDefault("backup.dir", "backups")

	v.SetDefault("providers.health_interval", 15*time.Minute)
	v.SetDefault("providers.huggingface.endpoint", llm.DefaultHuggingFaceEndpoint)
	v.SetDefault("providers.huggingface.credential", "")
	v.SetDefault("providers.huggingface.model", "")
	v.SetDefault("providers.huggingface.timeout_ms", int(llm.DefaultTimeout/time.Millisecond))
	v.SetDefault("providers.cohere.endpoint", llm.DefaultCohereEndpoint)
	v.SetDefault("providers.cohere.credential", "")
	v.SetDefault("providers.cohere.model", llm.DefaultCohereModel)
	v.SetDefault("providers.cohere.timeout_ms", int(llm.DefaultTimeout/time.Millisecond))
	v.SetDefault("providers.gemini.endpoint", "")
	v.SetDefault("providers.gemini.credential", "")
	v.SetDefault("providers.gemini.model", llm.DefaultGeminiModel)
	v.SetDefault("providers.gemini.timeout_ms", int(llm.DefaultTimeout/time.Millisecond))

	v.SetDefault("submit.rate_limit", 10)
	v.SetDefault("submit.rate_window", time.Minute)

	v.SetDefault("timezone", "Local")
}

// bindEnvironmentVariables accepts the conventional vendor key names in
// addition to the DRMIND_ prefixed ones
func bindEnvironmentVariables(v *viper.Viper) error {
	bindings := map[string][]string{
		"server.port":                      {"DRMIND_SERVER_PORT", "PORT"},
		"providers.huggingface.credential": {"DRMIND_PROVIDERS_HUGGINGFACE_CREDENTIAL", "HUGGINGFACE_API_KEY", "HF_API_KEY"},
		"providers.cohere.credential":      {"DRMIND_PROVIDERS_COHERE_CREDENTIAL", "COHERE_API_KEY"},
		"providers.gemini.credential":      {"DRMIND_PROVIDERS_GEMINI_CREDENTIAL", "GOOGLE_API_KEY", "GEMINI_API_KEY"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.DB.Path == "" {
		return fmt.Errorf("db.path is required")
	}
	if c.Backup.Enabled && c.Backup.Dir == "" {
		return fmt.Errorf("backup.dir is required when backup.enabled is set")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	if c.Submit.RateLimit < 1 {
		return fmt.Errorf("submit.rate_limit must be positive")
	}
	if c.Submit.RateWindow <= 0 {
		return fmt.Errorf("submit.rate_window must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if c.Providers.HealthInterval <= 0 {
		return fmt.Errorf("providers.health_interval must be positive")
	}
	for name, p := range map[string]Provider{
		"huggingface": c.Providers.HuggingFace,
		"cohere":      c.Providers.Cohere,
		"gemini":      c.Providers.Gemini,
	} {
		if p.TimeoutMs < 0 {
			return fmt.Errorf("providers.%s.timeout_ms must not be negative", name)
		}
	}
	return nil
}
