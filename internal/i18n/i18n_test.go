package i18n

import "testing"

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("fr-FR,fr;q=0.9") != "fr" {
		t.Fatalf("expected fr")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("ar,en;q=0.8") != "ar" {
		t.Fatalf("expected ar")
	}
	if DetectLanguage("") != "en" {
		t.Fatalf("expected default en")
	}
	if DetectLanguage("xx-YY") != "en" {
		t.Fatalf("expected fallback for unsupported language")
	}
}

func TestNormalize(t *testing.T) {
	if Normalize("TR") != "tr" {
		t.Fatalf("expected tr")
	}
	if Normalize("fr_CA") != "fr" {
		t.Fatalf("expected fr for fr_CA")
	}
	if Normalize("") != "en" {
		t.Fatalf("expected default en")
	}
}

func TestTranslations(t *testing.T) {
	if T("fr", "no_products") != "Aucun produit dans cette liste de colisage" {
		t.Fatalf("unexpected fr translation")
	}
	// missing key in a supported language falls back to english
	if T("ar", "total") != "Total" {
		t.Fatalf("expected english fallback")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
}
