package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

var (
	ErrMissingKey = errors.New("maps api key missing")
	ErrNoResults  = errors.New("no geocoding results")
)

// GeocodeService resolves place names through the Google Maps Geocoding API.
type GeocodeService struct {
	apiKey func() string
	opts   []maps.ClientOption
}

// NewGeocodeService reads the key on every lookup. Extra options are applied
// after the key (maps.WithBaseURL in tests).
func NewGeocodeService(apiKey func() string, opts ...maps.ClientOption) *GeocodeService {
	return &GeocodeService{apiKey: apiKey, opts: opts}
}

// Geocode returns the first result's location for query.
func (s *GeocodeService) Geocode(ctx context.Context, query string) (float64, float64, error) {
	key := ""
	if s.apiKey != nil {
		key = strings.TrimSpace(s.apiKey())
	}
	if key == "" {
		return 0, 0, ErrMissingKey
	}

	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(key)}, s.opts...)...)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create maps client: %w", err)
	}

	results, err := client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		return 0, 0, fmt.Errorf("maps api error: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, ErrNoResults
	}

	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
