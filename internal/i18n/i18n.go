// Package i18n resolves request languages and a handful of fixed strings
// that appear inside generated documents.
package i18n

import "strings"

// DefaultLang is used when detection fails.
const DefaultLang = "en"

var supported = map[string]bool{
	"en": true,
	"fr": true,
	"ar": true,
	"tr": true,
	"ru": true,
}

// Normalize lowercases a language code and strips any region subtag
// ("EN-gb" -> "en"). Unknown or empty codes fall back to DefaultLang.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	if supported[code] {
		return code
	}
	return DefaultLang
}

// DetectLanguage picks the first supported language from an Accept-Language
// header, falling back to DefaultLang.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		code := strings.ToLower(tag)
		if i := strings.IndexAny(code, "-_"); i > 0 {
			code = code[:i]
		}
		if supported[code] {
			return code
		}
	}
	return DefaultLang
}

var translations = map[string]map[string]string{
	"en": {
		"no_products": "No products in this packing list",
		"page":        "Page",
		"total":       "Total",
	},
	"fr": {
		"no_products": "Aucun produit dans cette liste de colisage",
		"page":        "Page",
		"total":       "Total",
	},
	"ar": {
		"no_products": "لا توجد منتجات في قائمة التعبئة",
	},
	"tr": {
		"no_products": "Bu çeki listesinde ürün yok",
	},
	"ru": {
		"no_products": "В упаковочном листе нет товаров",
	},
}

// T returns the translation of code in lang, falling back to the English
// string, then to the code itself.
func T(lang, code string) string {
	if m, ok := translations[Normalize(lang)]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := translations[DefaultLang][code]; ok {
		return s
	}
	return code
}
