package docctx

import (
	"sort"
	"strconv"
	"strings"

	"github.com/diewo77/exportdocs/internal/models"
)

// Values is the additional-context bag passed by callers. Recognised keys
// are consumed by the assembler; anything else passes through into doc.
// An empty-string value counts as absent.
type Values map[string]any

// Str returns the value under key rendered as a string, or "" when absent.
func (v Values) Str(key string) string {
	x, ok := v[key]
	if !ok {
		return ""
	}
	switch s := x.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return formatFloat(s)
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}

// Int returns the value under key as an int, or 0 when absent or unusable.
func (v Values) Int(key string) int {
	switch x := v[key].(type) {
	case int:
		return x
	case float64:
		return int(x)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(x))
		return n
	default:
		return 0
	}
}

// ProductLine is one resolved product row of the context. Prices stay
// numeric; the template filler owns display formatting.
type ProductLine struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	TotalPrice    float64 `json:"total_price"`
	UnitOfMeasure string  `json:"unit_of_measure"`
	Weight        string  `json:"weight"`
	Dimensions    string  `json:"dimensions"`
}

// Context is the fully-resolved render context. Seller, Client and
// ContactPerson hold already-stringified fields; Doc additionally carries
// caller passthrough values. Products is always empty for packing lists.
type Context struct {
	Seller        map[string]string `json:"seller"`
	Client        map[string]string `json:"client"`
	ContactPerson map[string]string `json:"contact_person"`
	Doc           map[string]any    `json:"doc"`
	Products      []ProductLine     `json:"products"`
	Placeholders  map[string]string `json:"placeholders"`
}

// DocumentType returns doc.document_type.
func (c *Context) DocumentType() string {
	s, _ := c.Doc["document_type"].(string)
	return s
}

// IsPackingList reports whether the price-exclusion rule applies.
func (c *Context) IsPackingList() bool {
	return models.IsPackingList(c.DocumentType())
}

// Lookup resolves a dotted path ("seller.bank_name", "doc.invoice_id",
// "products.0.name") to its string form. The second result is false for
// unknown paths.
func (c *Context) Lookup(path string) (string, bool) {
	head, rest, _ := strings.Cut(path, ".")
	switch head {
	case "seller":
		v, ok := c.Seller[rest]
		return v, ok
	case "client":
		v, ok := c.Client[rest]
		return v, ok
	case "contact_person":
		v, ok := c.ContactPerson[rest]
		return v, ok
	case "doc":
		v, ok := c.Doc[rest]
		if !ok {
			return "", false
		}
		return stringify(v), true
	case "placeholders":
		v, ok := c.Placeholders[rest]
		return v, ok
	case "products":
		idxStr, field, ok := strings.Cut(rest, ".")
		if !ok {
			return "", false
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 || idx >= len(c.Products) {
			return "", false
		}
		return c.Products[idx].Field(field)
	default:
		return "", false
	}
}

// Field resolves one column of a product line by its context name.
func (p ProductLine) Field(name string) (string, bool) {
	switch name {
	case "name":
		return p.Name, true
	case "description":
		return p.Description, true
	case "quantity":
		return formatFloat(p.Quantity), true
	case "unit_price":
		return formatFloat(p.UnitPrice), true
	case "total_price":
		return formatFloat(p.TotalPrice), true
	case "unit_of_measure":
		return p.UnitOfMeasure, true
	case "weight":
		return p.Weight, true
	case "dimensions":
		return p.Dimensions, true
	default:
		return "", false
	}
}

// Map renders the context as the plain nested mapping documented for
// templates and the JSON preview endpoint. Top-level keys are always exactly
// seller, client, contact_person, doc, products, placeholders.
func (c *Context) Map() map[string]any {
	products := make([]map[string]any, 0, len(c.Products))
	for _, p := range c.Products {
		products = append(products, map[string]any{
			"name":            p.Name,
			"description":     p.Description,
			"quantity":        p.Quantity,
			"unit_price":      p.UnitPrice,
			"total_price":     p.TotalPrice,
			"unit_of_measure": p.UnitOfMeasure,
			"weight":          p.Weight,
			"dimensions":      p.Dimensions,
		})
	}
	return map[string]any{
		"seller":         c.Seller,
		"client":         c.Client,
		"contact_person": c.ContactPerson,
		"doc":            c.Doc,
		"products":       products,
		"placeholders":   c.Placeholders,
	}
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return formatFloat(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// sortedKeys is used wherever map iteration order would otherwise leak into
// the output; assembled contexts must be deterministic for fixed inputs.
func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
