package statbag

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Bag holds upstream stat fields keyed by their API name. Values are whatever the
// decoder produced (float64, string, bool, nil, nested values) after coercion.
type Bag map[string]any

// Coerce returns a copy of in where every non-empty string that parses as a number
// is replaced by that number rounded to 3 decimals. Strings that do not parse are
// kept verbatim and non-string values pass through untouched. It never fails.
func Coerce(in map[string]any) Bag {
	out := make(Bag, len(in))
	for key, value := range in {
		out[key] = CoerceValue(value)
	}
	return out
}

// CoerceValue applies the Coerce rule to a single value.
func CoerceValue(value any) any {
	text, ok := value.(string)
	if !ok || text == "" {
		return value
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return value
	}
	return Round(parsed, 3)
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// Float reads key as a number. Missing keys, nil, and values that never coerced to
// a number read as 0 so derived arithmetic cannot fault on malformed fields.
func (b Bag) Float(key string) float64 {
	if b == nil {
		return 0
	}
	switch typed := b[key].(type) {
	case float64:
		return typed
	case float32:
		return float64(typed)
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case int32:
		return float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0
		}
		return parsed
	case bool:
		if typed {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func (b Bag) Int(key string) int {
	return int(math.Round(b.Float(key)))
}

func (b Bag) String(key string) string {
	if b == nil {
		return ""
	}
	switch typed := b[key].(type) {
	case string:
		return typed
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return ""
	}
}

// Has reports whether key holds a numeric value.
func (b Bag) Has(key string) bool {
	if b == nil {
		return false
	}
	switch b[key].(type) {
	case float64, float32, int, int64, int32:
		return true
	default:
		return false
	}
}

func (b Bag) Set(key string, value float64) {
	b[key] = value
}

// Clone returns a shallow copy; nested values are shared.
func (b Bag) Clone() Bag {
	out := make(Bag, len(b))
	for key, value := range b {
		out[key] = value
	}
	return out
}

// Keys returns the bag keys in lexical order.
func (b Bag) Keys() []string {
	keys := make([]string, 0, len(b))
	for key := range b {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Ratio divides numerator by denominator and yields 0 when the denominator is 0.
func Ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
