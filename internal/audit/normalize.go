// File path: internal/audit/normalize.go
package audit

import (
	"encoding/json"
	"math"
)

// Normalize converts an arbitrary value into a JSON-safe shape: every
// leaf is nil, bool, int64, float64 or string. NaN and infinite floats
// become nil, fixed-width numeric types widen to int64/float64, and
// json.Number resolves to int64 when integral. Containers (Record,
// map[string]any, slices) are walked recursively. The function is total
// and idempotent; unknown leaf types pass through unchanged.
func Normalize(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case bool, string:
		return v
	case int64:
		return v
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return normalizeFloat(float64(v))
	case float64:
		return normalizeFloat(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return normalizeFloat(f)
		}
		return v.String()
	case Record:
		out := NewRecord()
		for _, key := range v.keys {
			out.Set(key, Normalize(v.values[key]))
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out
	case []Record:
		out := make([]Record, len(v))
		for i, item := range v {
			out[i] = Normalize(item).(Record)
		}
		return out
	default:
		return v
	}
}

// NormalizeRecord applies Normalize to every column of a record,
// returning a new record.
func NormalizeRecord(r Record) Record {
	return Normalize(r).(Record)
}

func normalizeFloat(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
