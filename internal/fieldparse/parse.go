// Package fieldparse canonicalises the semi-structured free-text fields
// (payment info, VAT blobs, addresses) found on companies and clients. It is
// the only place such parsing may live; everything else consumes its records.
package fieldparse

import (
	"encoding/json"
	"strings"
)

// NA is the render-boundary stand-in for a value that could not be resolved.
const NA = "N/A"

// JSONOrDefault decodes text as a JSON object. On empty input, a decode
// error, or JSON that is not an object (an array, a bare string, null), it
// returns def unchanged.
func JSONOrDefault(text string, def map[string]any) map[string]any {
	t := strings.TrimSpace(text)
	if t == "" {
		return def
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(t), &m); err != nil || m == nil {
		return def
	}
	return m
}

// KeyValue decodes "KEY: value; KEY2: value2" text. Keys are normalised to
// snake_case; values are trimmed; duplicate keys keep the last occurrence.
// Input yielding no valid pair returns def unchanged.
func KeyValue(text string, def map[string]string) map[string]string {
	t := strings.TrimSpace(text)
	if t == "" {
		return def
	}
	out := map[string]string{}
	for _, part := range strings.Split(t, ";") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		key := NormalizeKey(k)
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(v)
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// NormalizeKey lowercases a key and rewrites separators to underscores, so
// "Account Number" and "account-number" both become "account_number".
func NormalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	k = strings.ReplaceAll(k, "-", " ")
	return strings.Join(strings.Fields(k), "_")
}

// FormatAddress joins the non-empty parts with ", " in fixed order. The
// literal string "None" counts as empty. All parts empty yields "".
func FormatAddress(line1, city, postal, country string) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{line1, city, postal, country} {
		p = strings.TrimSpace(p)
		if p == "" || p == "None" {
			continue
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, ", ")
}

// stringValue renders a decoded JSON value for record fields. Only scalars
// are accepted; objects and arrays count as absent.
func stringValue(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return x.String()
	case float64:
		n, _ := json.Marshal(x)
		return string(n)
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// firstKey returns the first non-empty value among the aliases in m.
func firstKey(m map[string]any, aliases ...string) string {
	for _, a := range aliases {
		if v, ok := m[a]; ok {
			if s := stringValue(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstKeyString(m map[string]string, aliases ...string) string {
	for _, a := range aliases {
		if v := strings.TrimSpace(m[a]); v != "" {
			return v
		}
	}
	return ""
}
