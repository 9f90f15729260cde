package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Client configures the terminal wizard.
type Client struct {
	BaseURL string
}

// Smoke configures the smoke runner. Command-line flags override these.
type Smoke struct {
	BaseURL     string
	Live        bool
	Strict      bool
	Timeout     time.Duration
	Concurrency int
}

func LoadClient() (Client, error) {
	return ClientFromViper(newEnvViper())
}

func LoadSmoke() (Smoke, error) {
	return SmokeFromViper(newEnvViper())
}

func ClientFromViper(v *viper.Viper) (Client, error) {
	setToolDefaults(v)
	c := Client{BaseURL: strings.TrimRight(v.GetString("PACKNTRACK_API_URL"), "/")}
	if c.BaseURL == "" {
		return Client{}, fmt.Errorf("invalid configuration: PACKNTRACK_API_URL is empty")
	}
	return c, nil
}

func SmokeFromViper(v *viper.Viper) (Smoke, error) {
	setToolDefaults(v)
	s := Smoke{
		BaseURL:     strings.TrimRight(v.GetString("PACKNTRACK_SMOKE_BASE_URL"), "/"),
		Live:        v.GetBool("PACKNTRACK_SMOKE_LIVE"),
		Strict:      v.GetBool("PACKNTRACK_SMOKE_STRICT"),
		Timeout:     v.GetDuration("PACKNTRACK_SMOKE_TIMEOUT"),
		Concurrency: v.GetInt("PACKNTRACK_SMOKE_CONCURRENCY"),
	}
	if s.Timeout <= 0 {
		return Smoke{}, fmt.Errorf("invalid configuration: smoke timeout must be positive")
	}
	if s.Concurrency <= 0 {
		return Smoke{}, fmt.Errorf("invalid configuration: smoke concurrency must be positive")
	}
	return s, nil
}

func newEnvViper() *viper.Viper {
	_ = godotenv.Load()
	v := viper.New()
	v.AutomaticEnv()
	return v
}

func setToolDefaults(v *viper.Viper) {
	v.SetDefault("PACKNTRACK_API_URL", "http://localhost:8080")
	v.SetDefault("PACKNTRACK_SMOKE_BASE_URL", "http://localhost:8080")
	v.SetDefault("PACKNTRACK_SMOKE_LIVE", false)
	v.SetDefault("PACKNTRACK_SMOKE_STRICT", false)
	v.SetDefault("PACKNTRACK_SMOKE_TIMEOUT", "2m")
	v.SetDefault("PACKNTRACK_SMOKE_CONCURRENCY", 20)
}
