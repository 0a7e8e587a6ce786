package config

import (
	"errors"
	"fmt"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config is loaded once at start and handed to constructors by value. Nothing
// reads credentials from the environment after Load returns.
type Config struct {
	Server   Server   `yaml:"server" toml:"server"`
	Log      Log      `yaml:"log" toml:"log"`
	LLM      LLM      `yaml:"llm" toml:"llm"`
	Services Services `yaml:"services" toml:"services"`
	Archive  Archive  `yaml:"archive" toml:"archive"`
}

type Server struct {
	Addr            string        `yaml:"addr" toml:"addr"`
	StatusTimeout   time.Duration `yaml:"status_timeout" toml:"status_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	// PlanRetention is how long a finished plan stays queryable by id.
	PlanRetention time.Duration `yaml:"plan_retention" toml:"plan_retention"`
}

type Log struct {
	Level  string `yaml:"level" toml:"level"`
	Pretty bool   `yaml:"pretty" toml:"pretty"`
}

type LLM struct {
	Provider      string  `yaml:"provider" toml:"provider"`
	GeminiModel   string  `yaml:"gemini_model" toml:"gemini_model"`
	OpenAIModel   string  `yaml:"openai_model" toml:"openai_model"`
	Temperature   float64 `yaml:"temperature" toml:"temperature"`
	GeminiKey     string  `yaml:"gemini_key" toml:"gemini_key"`
	OpenAIKey     string  `yaml:"openai_key" toml:"openai_key"`
	GeminiBaseURL string  `yaml:"gemini_base_url" toml:"gemini_base_url"`
	// RequestTimeout bounds a single HTTP request to the model provider.
	RequestTimeout time.Duration `yaml:"request_timeout" toml:"request_timeout"`
}

type Services struct {
	SerpAPIKey      string  `yaml:"serpapi_key" toml:"serpapi_key"`
	ExchangeKey     string  `yaml:"exchange_key" toml:"exchange_key"`
	SearchBaseURL   string  `yaml:"search_base_url" toml:"search_base_url"`
	ExchangeBaseURL string  `yaml:"exchange_base_url" toml:"exchange_base_url"`
	RatePerSecond   float64 `yaml:"rate_per_second" toml:"rate_per_second"`
	Burst           int     `yaml:"burst" toml:"burst"`
}

type Archive struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path" toml:"path"`
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			StatusTimeout:   time.Minute,
			ShutdownTimeout: 15 * time.Second,
			PlanRetention:   30 * time.Minute,
		},
		Log: Log{
			Level:  "info",
			Pretty: true,
		},
		LLM: LLM{
			Provider:       ProviderGemini,
			GeminiModel:    "gemini-2.0-flash-exp",
			OpenAIModel:    "gpt-4",
			Temperature:    0.7,
			GeminiBaseURL:  "https://generativelanguage.googleapis.com/v1beta",
			RequestTimeout: 120 * time.Second,
		},
		Services: Services{
			SearchBaseURL:   "https://serpapi.com/search",
			ExchangeBaseURL: "https://api.exchangerate-api.com/v4/latest",
			RatePerSecond:   5,
			Burst:           10,
		},
		Archive: Archive{
			Enabled: true,
			Path:    "tripplanner.db",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path loads defaults and environment only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	cfg = cfg.withEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("decode config: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return nil
}

// withEnv returns a copy with credentials and a few operational settings
// taken from getenv when set.
func (c Config) withEnv(getenv func(string) string) Config {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.LLM.GeminiKey, "GEMINI_API_KEY")
	set(&c.LLM.OpenAIKey, "OPENAI_API_KEY")
	set(&c.Services.SerpAPIKey, "SERPAPI_KEY")
	set(&c.Services.ExchangeKey, "EXCHANGE_API_KEY")
	set(&c.LLM.Provider, "TRIPPLANNER_LLM_PROVIDER")
	set(&c.Log.Level, "TRIPPLANNER_LOG_LEVEL")
	set(&c.Server.Addr, "TRIPPLANNER_ADDR")
	set(&c.Archive.Path, "TRIPPLANNER_ARCHIVE")
	return c
}

func (c Config) Validate() error {
	var errs []error
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		errs = append(errs, fmt.Errorf("llm.provider must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, c.LLM.Provider))
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, fmt.Errorf("llm.temperature must be within [0, 2], got %v", c.LLM.Temperature))
	}
	if c.LLM.RequestTimeout <= 0 {
		errs = append(errs, errors.New("llm.request_timeout must be positive"))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.PlanRetention <= 0 {
		errs = append(errs, errors.New("server.plan_retention must be positive"))
	}
	if c.Services.RatePerSecond <= 0 || c.Services.Burst < 1 {
		errs = append(errs, errors.New("services rate limit must be positive"))
	}
	if c.Archive.Enabled && c.Archive.Path == "" {
		errs = append(errs, errors.New("archive.path is required when the archive is enabled"))
	}
	return errors.Join(errs...)
}
