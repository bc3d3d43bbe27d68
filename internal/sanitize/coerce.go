// Package sanitize turns untrusted model payloads into fully bounded
// typed results. Every entry point is total: any input shape, including
// nil, primitives and malformed nesting, produces a valid result and
// never an error.
//
// The coercion rules are declarative: each field declares its kind,
// numeric domain, default and enum set in a table, and one generic
// routine applies the table. Adding a field is a data change.
package sanitize

import (
	"math"
	"strconv"
	"strings"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindFloat
	kindBool
	kindEnum
	kindStringList
)

// rule declares how one raw field coerces into its bounded value.
type rule struct {
	key  string
	kind fieldKind
	min  float64 // numeric domain; use math.Inf for open ends
	max  float64
	def  any // string, int, float64 or bool depending on kind
	enum []string
}

// record holds coerced values keyed by field name. applyRules guarantees
// the dynamic type of every entry matches its rule's kind.
type record map[string]any

func (r record) str(k string) string    { s, _ := r[k].(string); return s }
func (r record) int(k string) int       { n, _ := r[k].(int); return n }
func (r record) float(k string) float64 { f, _ := r[k].(float64); return f }
func (r record) bool(k string) bool     { b, _ := r[k].(bool); return b }
func (r record) list(k string) []string {
	l, _ := r[k].([]string)
	if l == nil {
		return []string{}
	}
	return l
}

// applyRules coerces obj field by field, in table order.
func applyRules(obj map[string]any, rules []rule) record {
	out := make(record, len(rules))
	for _, ru := range rules {
		raw, ok := obj[ru.key]
		if !ok {
			raw = nil
		}
		switch ru.kind {
		case kindString:
			out[ru.key] = coerceString(raw, ru.def.(string))
		case kindInt:
			out[ru.key] = coerceInt(raw, ru.min, ru.max, ru.def.(int))
		case kindFloat:
			out[ru.key] = coerceFloat(raw, ru.min, ru.max, ru.def.(float64))
		case kindBool:
			out[ru.key] = coerceBool(raw, ru.def.(bool))
		case kindEnum:
			out[ru.key] = coerceEnum(raw, ru.enum, ru.def.(string))
		case kindStringList:
			out[ru.key] = coerceStringList(raw)
		}
	}
	return out
}

// asObject returns v as a JSON object, or an empty object for any other
// shape. This is what makes the sanitizer total over degenerate input.
func asObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// asList returns v as a JSON array, or nil for any other shape.
func asList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return nil
}

// toNumber converts a raw value into a finite float64.
func toNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case float32:
		return toNumber(float64(x))
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func clamp(f, min, max float64) float64 {
	if f < min {
		return min
	}
	if f > max {
		return max
	}
	return f
}

func coerceFloat(v any, min, max, def float64) float64 {
	f, ok := toNumber(v)
	if !ok {
		f = def
	}
	return clamp(f, min, max)
}

// coerceInt rounds to the nearest integer, then clamps.
func coerceInt(v any, min, max float64, def int) int {
	f, ok := toNumber(v)
	if !ok {
		f = float64(def)
	}
	return int(clamp(math.Round(f), min, max))
}

func coerceString(v any, def string) string {
	if s, ok := v.(string); ok {
		if t := strings.TrimSpace(s); t != "" {
			return t
		}
	}
	return def
}

func coerceBool(v any, def bool) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "yes":
			return true
		case "false", "no":
			return false
		}
	}
	return def
}

// coerceEnum keeps the raw value only when it is a member of the closed
// set; anything else falls to the default, never passes through.
func coerceEnum(v any, allowed []string, def string) string {
	s, ok := v.(string)
	if !ok {
		return def
	}
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range allowed {
		if s == a {
			return a
		}
	}
	return def
}

// coerceStringList keeps string elements, trimmed, dropping empties and
// non-strings. Absent or malformed lists come back empty, never nil.
func coerceStringList(v any) []string {
	out := []string{}
	for _, el := range asList(v) {
		if s, ok := el.(string); ok {
			if t := strings.TrimSpace(s); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

func enumVals(vals ...string) []string { return vals }
