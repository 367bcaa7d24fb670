// Package records defines the generic row representation shared by the
// parser, the report pipeline, and the storage backends. A Record is a
// map from canonical column name to value; values are raw strings as
// parsed, or typed values (time.Time, float64, ...) after normalization.
package records

import (
	"strconv"
	"strings"
	"time"
)

// Record is a single row keyed by canonical column name.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Num looks up a field and coerces it to float64. The second return is
// false when the field is absent, nil, or not coercible. Percent signs
// and thousands separators are tolerated in string values.
func (r Record) Num(field string) (float64, bool) {
	v, ok := r[field]
	if !ok {
		return 0, false
	}
	return Float(v)
}

// NumOrZero is Num with a zero default for absent or unparsable fields.
func (r Record) NumOrZero(field string) float64 {
	f, _ := r.Num(field)
	return f
}

// Str looks up a field as a string. Non-string values return "".
func (r Record) Str(field string) string {
	if v, ok := r[field]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Time looks up a field as a time.Time.
func (r Record) Time(field string) (time.Time, bool) {
	if v, ok := r[field]; ok {
		if t, ok := v.(time.Time); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// Float coerces a value to float64. Strings are parsed after stripping
// surrounding spaces, a trailing percent sign, and comma separators.
func Float(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		s := strings.TrimSpace(t)
		s = strings.TrimSuffix(s, "%")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
