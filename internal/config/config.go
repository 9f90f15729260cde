// README: Config loader with env defaults for HTTP, the LLM provider, and plan post-processing.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// KeySource resolves a secret when it is needed rather than at startup, so a
// missing key surfaces as a per-request configuration error.
type KeySource func() string

// Static returns a KeySource that always yields key.
func Static(key string) KeySource {
	return func() string { return key }
}

type AIConfig struct {
	Provider        string
	GroqBaseURL     string
	GroqModel       string
	GeminiModel     string
	Temperature     float32
	UpstreamTimeout time.Duration
	GroqKey         KeySource
	GeminiKey       KeySource
}

// PlanConfig toggles optional post-processing of the generated plan. All of
// it is off by default and the proxy relays the model output untouched.
type PlanConfig struct {
	LenientJSON    bool
	ValidatePlan   bool
	GeocodeMissing bool
}

type Config struct {
	HTTP struct {
		Addr      string
		PprofAddr string
	}
	AI   AIConfig
	Plan PlanConfig
	Maps struct {
		APIKey KeySource
	}
	Log struct {
		Level  string
		Format string
	}
	Tracing struct {
		ServiceName  string
		OTLPEndpoint string
	}
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = v.GetString("PACKNTRACK_HTTP_ADDR")
	cfg.HTTP.PprofAddr = v.GetString("PACKNTRACK_PPROF_ADDR")

	cfg.AI.Provider = strings.ToLower(strings.TrimSpace(v.GetString("PACKNTRACK_PROVIDER")))
	cfg.AI.GroqBaseURL = strings.TrimRight(v.GetString("PACKNTRACK_GROQ_BASE_URL"), "/")
	cfg.AI.GroqModel = v.GetString("PACKNTRACK_GROQ_MODEL")
	cfg.AI.GeminiModel = v.GetString("PACKNTRACK_GEMINI_MODEL")
	cfg.AI.Temperature = float32(v.GetFloat64("PACKNTRACK_TEMPERATURE"))
	cfg.AI.UpstreamTimeout = v.GetDuration("PACKNTRACK_UPSTREAM_TIMEOUT")
	cfg.AI.GroqKey = keyFrom(v, "GROQ_API_KEY")
	cfg.AI.GeminiKey = keyFrom(v, "GEMINI_API_KEY")

	cfg.Plan.LenientJSON = v.GetBool("PACKNTRACK_LENIENT_JSON")
	cfg.Plan.ValidatePlan = v.GetBool("PACKNTRACK_VALIDATE_PLAN")
	cfg.Plan.GeocodeMissing = v.GetBool("PACKNTRACK_GEOCODE_MISSING")
	cfg.Maps.APIKey = keyFrom(v, "GOOGLE_MAPS_API_KEY")

	cfg.Log.Level = v.GetString("PACKNTRACK_LOG_LEVEL")
	cfg.Log.Format = v.GetString("PACKNTRACK_LOG_FORMAT")

	cfg.Tracing.ServiceName = v.GetString("PACKNTRACK_SERVICE_NAME")
	cfg.Tracing.OTLPEndpoint = v.GetString("PACKNTRACK_OTLP_ENDPOINT")

	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PACKNTRACK_HTTP_ADDR", ":8080")
	v.SetDefault("PACKNTRACK_PPROF_ADDR", "")
	v.SetDefault("PACKNTRACK_PROVIDER", ProviderGroq)
	v.SetDefault("PACKNTRACK_GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	v.SetDefault("PACKNTRACK_GROQ_MODEL", "llama-3.3-70b-versatile")
	v.SetDefault("PACKNTRACK_GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("PACKNTRACK_TEMPERATURE", 0.2)
	v.SetDefault("PACKNTRACK_UPSTREAM_TIMEOUT", "60s")
	v.SetDefault("PACKNTRACK_LENIENT_JSON", false)
	v.SetDefault("PACKNTRACK_VALIDATE_PLAN", false)
	v.SetDefault("PACKNTRACK_GEOCODE_MISSING", false)
	v.SetDefault("PACKNTRACK_LOG_LEVEL", "info")
	v.SetDefault("PACKNTRACK_LOG_FORMAT", "json")
	v.SetDefault("PACKNTRACK_SERVICE_NAME", "packntrack-api")
	v.SetDefault("PACKNTRACK_OTLP_ENDPOINT", "")
}

// keyFrom reads the key on every call; viper consults the environment lazily.
func keyFrom(v *viper.Viper, key string) KeySource {
	return func() string {
		return strings.TrimSpace(v.GetString(key))
	}
}

func validate(cfg Config) error {
	switch cfg.AI.Provider {
	case ProviderGroq, ProviderGemini:
	default:
		return fmt.Errorf("unknown provider %q", cfg.AI.Provider)
	}
	if cfg.AI.UpstreamTimeout < 0 {
		return fmt.Errorf("upstream timeout must not be negative")
	}
	if cfg.AI.Temperature < 0 || cfg.AI.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of range [0, 2]", cfg.AI.Temperature)
	}
	return nil
}
