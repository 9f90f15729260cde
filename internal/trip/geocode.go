package trip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Geocoder resolves a free-text place to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat, lon float64, err error)
}

// fillMissingCoords geocodes "<name>, <city>" for every activity without a
// usable coords pair. Lookups that fail leave the activity untouched. The
// input is returned as-is when nothing was filled.
func fillMissingCoords(ctx context.Context, raw json.RawMessage, city string, g Geocoder, log *zap.Logger) (json.RawMessage, int, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return raw, 0, fmt.Errorf("decode plan: %w", err)
	}

	days, _ := doc["days"].([]interface{})
	filled := 0
	for _, d := range days {
		day, ok := d.(map[string]interface{})
		if !ok {
			continue
		}
		acts, _ := day["activities"].([]interface{})
		for _, a := range acts {
			act, ok := a.(map[string]interface{})
			if !ok || hasCoordPair(act["coords"]) {
				continue
			}
			name, _ := act["name"].(string)
			if strings.TrimSpace(name) == "" {
				continue
			}
			query := name
			if city != "" {
				query = name + ", " + city
			}
			lat, lon, err := g.Geocode(ctx, query)
			if err != nil {
				log.Warn("geocode failed", zap.String("query", query), zap.Error(err))
				continue
			}
			act["coords"] = []float64{lat, lon}
			filled++
		}
	}

	if filled == 0 {
		return raw, 0, nil
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return raw, 0, fmt.Errorf("encode plan: %w", err)
	}
	return out, filled, nil
}

func hasCoordPair(v interface{}) bool {
	arr, ok := v.([]interface{})
	if !ok || len(arr) != 2 {
		return false
	}
	for _, x := range arr {
		if _, ok := x.(json.Number); !ok {
			return false
		}
	}
	return true
}
