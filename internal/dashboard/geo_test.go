package dashboard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      LatLon
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         LatLon{35.005, 135.764},
			b:         LatLon{35.005, 135.764},
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "Nishiki Market to Fushimi Inari (~4km)",
			a:         LatLon{35.0050, 135.7640},
			b:         LatLon{34.9671, 135.7727},
			wantKm:    4.3,
			tolerance: 0.5,
		},
		{
			name:      "New York to Los Angeles (~3944km)",
			a:         LatLon{40.7128, -74.0060},
			b:         LatLon{34.0522, -118.2437},
			wantKm:    3944,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haversineKm(tt.a, tt.b)
			assert.InDelta(t, tt.wantKm, got, tt.tolerance)
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	a, b := LatLon{25, 121}, LatLon{26, 122}
	assert.Less(t, math.Abs(haversineKm(a, b)-haversineKm(b, a)), 0.0001)
}

func TestInRange(t *testing.T) {
	assert.True(t, inRange(LatLon{35, 135.8}))
	assert.True(t, inRange(LatLon{-90, 180}))
	assert.False(t, inRange(LatLon{91, 0}))
	assert.False(t, inRange(LatLon{0, -181}))
}
