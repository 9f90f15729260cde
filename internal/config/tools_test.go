package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFromViper_Defaults(t *testing.T) {
	s, err := SmokeFromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", s.BaseURL)
	assert.False(t, s.Live)
	assert.False(t, s.Strict)
	assert.Equal(t, 2*time.Minute, s.Timeout)
	assert.Equal(t, 20, s.Concurrency)
}

func TestSmokeFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("PACKNTRACK_SMOKE_BASE_URL", "http://api.internal:9000/")
	v.Set("PACKNTRACK_SMOKE_LIVE", "true")
	v.Set("PACKNTRACK_SMOKE_TIMEOUT", "30s")
	v.Set("PACKNTRACK_SMOKE_CONCURRENCY", "5")

	s, err := SmokeFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal:9000", s.BaseURL)
	assert.True(t, s.Live)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Equal(t, 5, s.Concurrency)
}

func TestSmokeFromViper_RejectsNonPositive(t *testing.T) {
	v := viper.New()
	v.Set("PACKNTRACK_SMOKE_CONCURRENCY", "0")
	_, err := SmokeFromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("PACKNTRACK_SMOKE_TIMEOUT", "0s")
	_, err = SmokeFromViper(v)
	assert.Error(t, err)
}

func TestClientFromViper(t *testing.T) {
	c, err := ClientFromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.BaseURL)

	v := viper.New()
	v.Set("PACKNTRACK_API_URL", "https://trips.example.com/")
	c, err = ClientFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "https://trips.example.com", c.BaseURL)
}
