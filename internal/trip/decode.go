package trip

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

var errUnrepairable = errors.New("content could not be repaired into a JSON object")

// parseContent checks that the completion is JSON and returns it compacted.
// The parser's message is returned unchanged on failure.
func parseContent(content string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// repairContent tries json-repair first, then Hjson. Only a JSON object is
// accepted, since repair will happily turn prose into a JSON string.
func repairContent(content string) (json.RawMessage, error) {
	if repaired, err := jsonrepair.RepairJSON(content); err == nil {
		if out, err := parseContent(repaired); err == nil && isObject(out) {
			return out, nil
		}
	}

	var v interface{}
	if err := hjson.Unmarshal([]byte(content), &v); err == nil {
		if _, ok := v.(map[string]interface{}); ok {
			if out, err := json.Marshal(v); err == nil {
				return out, nil
			}
		}
	}

	return nil, errUnrepairable
}

func isObject(raw json.RawMessage) bool {
	return strings.HasPrefix(strings.TrimSpace(string(raw)), "{")
}

// DecodePlan parses a relayed plan into its typed form.
func DecodePlan(raw []byte) (*TripPlan, error) {
	var plan TripPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}
