package fieldparse

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONOrDefault(t *testing.T) {
	def := map[string]any{"k": "v"}
	if m := JSONOrDefault(`{"a":"b"}`, def); m["a"] != "b" {
		t.Fatalf("expected decoded object, got %#v", m)
	}
	if m := JSONOrDefault("not json", def); m["k"] != "v" {
		t.Fatalf("expected default on malformed input, got %#v", m)
	}
	if m := JSONOrDefault("", def); m["k"] != "v" {
		t.Fatalf("expected default on empty input")
	}
	// JSON that decodes to a non-object counts as a parse failure
	if m := JSONOrDefault(`["a","b"]`, def); m["k"] != "v" {
		t.Fatalf("expected default for array input, got %#v", m)
	}
	if m := JSONOrDefault("null", def); m["k"] != "v" {
		t.Fatalf("expected default for null input")
	}
}

func TestJSONOrDefaultRoundTrip(t *testing.T) {
	orig := map[string]any{"bank_name": "Acme Bank", "swift_bic": "ACMEFRPP"}
	raw, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := JSONOrDefault(string(raw), nil)
	if len(got) != len(orig) {
		t.Fatalf("round trip changed size: %#v", got)
	}
	for k, v := range orig {
		if got[k] != v {
			t.Fatalf("round trip lost %s: %#v", k, got)
		}
	}
}

func TestKeyValue(t *testing.T) {
	kv := KeyValue("VAT: FR123; Account Number: 42; vat: FR999", nil)
	if kv["account_number"] != "42" {
		t.Fatalf("expected normalised key, got %#v", kv)
	}
	// duplicate keys: last occurrence wins
	if kv["vat"] != "FR999" {
		t.Fatalf("expected last duplicate to win, got %q", kv["vat"])
	}
	def := map[string]string{"x": "y"}
	if got := KeyValue("free prose with no pairs", def); got["x"] != "y" {
		t.Fatalf("expected default on malformed input, got %#v", got)
	}
	if got := KeyValue("", def); got["x"] != "y" {
		t.Fatalf("expected default on empty input")
	}
}

func TestNormalizeKey(t *testing.T) {
	for in, want := range map[string]string{
		"Account Number": "account_number",
		" SWIFT-BIC ":    "swift_bic",
		"VAT":            "vat",
	} {
		if got := NormalizeKey(in); got != want {
			t.Fatalf("NormalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatAddress(t *testing.T) {
	if got := FormatAddress("1 Main St", "Paris", "75001", "France"); got != "1 Main St, Paris, 75001, France" {
		t.Fatalf("unexpected address %q", got)
	}
	if got := FormatAddress("", "", "", ""); got != "" {
		t.Fatalf("expected empty address, got %q", got)
	}
	// "None" components are empty
	if got := FormatAddress("1 Main St", "None", "", "France"); got != "1 Main St, France" {
		t.Fatalf("unexpected address %q", got)
	}
	// never two consecutive separators, whatever is missing
	cases := [][4]string{
		{"a", "", "c", "d"},
		{"", "b", "", "d"},
		{"a", "", "", ""},
		{"", "", "", "d"},
	}
	for _, c := range cases {
		if got := FormatAddress(c[0], c[1], c[2], c[3]); strings.Contains(got, ", ,") {
			t.Fatalf("consecutive separators in %q", got)
		}
	}
}
