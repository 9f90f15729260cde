package trip

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Input is a plan-trip body as received, each field already rendered to the
// text it contributes to the prompt. Values are not type checked: "2", 2 and
// 2.0 all render as "2".
type Input struct {
	City  string
	Days  string
	Prefs string
}

// Input renders a typed request the same way a posted body would be.
func (r TripRequest) Input() Input {
	return Input{
		City:  r.City,
		Days:  strconv.Itoa(r.Days),
		Prefs: strings.Join(r.Prefs, ", "),
	}
}

// DecodeInput reads a request body. Only syntactically broken JSON is an
// error. An empty body, a non-object body, and absent fields render like the
// zero TripRequest.
func DecodeInput(raw []byte) (Input, error) {
	in := TripRequest{}.Input()
	if len(bytes.TrimSpace(raw)) == 0 {
		return in, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		return in, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return in, fmt.Errorf("unexpected data after JSON value at offset %d", dec.InputOffset())
	}

	fields, ok := body.(map[string]any)
	if !ok {
		return in, nil
	}
	if v, ok := fields["city"]; ok {
		in.City = renderValue(v)
	}
	if v, ok := fields["days"]; ok {
		in.Days = renderValue(v)
	}
	if v, ok := fields["prefs"]; ok {
		if list, isList := v.([]any); isList {
			in.Prefs = joinValues(list, ", ")
		} else {
			in.Prefs = renderValue(v)
		}
	}
	return in, nil
}

// renderValue formats a decoded JSON value as string interpolation in a
// JavaScript template literal would.
func renderValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return renderNumber(x)
	case []any:
		return joinValues(x, ",")
	default:
		return "[object Object]"
	}
}

// joinValues follows Array.prototype.join: null elements become empty.
func joinValues(list []any, sep string) string {
	parts := make([]string, len(list))
	for i, v := range list {
		if v != nil {
			parts[i] = renderValue(v)
		}
	}
	return strings.Join(parts, sep)
}

func renderNumber(n json.Number) string {
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	if f == 0 {
		return "0"
	}
	if a := math.Abs(f); a >= 1e21 || a < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		return strings.Replace(s, "e-0", "e-", 1)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
