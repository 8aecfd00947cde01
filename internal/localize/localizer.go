// Package localize resolves a product into a target language by walking the
// equivalence graph. Lookup is pure over the injected store; a missing
// translation is never an error, only a flagged fallback.
package localize

import (
	"fmt"
	"sort"

	"github.com/diewo77/exportdocs/internal/docerr"
	"github.com/diewo77/exportdocs/internal/models"
)

// Store is the read-only slice of the data layer the localiser needs.
// docctx.DataAccess satisfies it.
type Store interface {
	LoadProduct(id uint) (*models.Product, error)
	LoadEquivalents(productID uint) ([]models.Product, error)
}

// Localized is the resolved product. FallbackUsed is set when no equivalent
// in the requested language exists and the source row is returned as-is.
type Localized struct {
	models.Product
	FallbackUsed bool
}

// maxDepth bounds the equivalence walk. Pairs are entered per language pair,
// so two hops cover every language reachable through a shared pivot row.
const maxDepth = 2

// Resolve returns the equivalent of productID in languageCode, or the source
// product flagged FallbackUsed when none exists. It fails only when the
// source product itself is unknown.
func Resolve(s Store, productID uint, languageCode string) (Localized, error) {
	src, err := s.LoadProduct(productID)
	if err != nil {
		return Localized{}, fmt.Errorf("load product %d: %w", productID, err)
	}
	if src == nil {
		return Localized{}, docerr.NotFoundf("product %d", productID)
	}
	if src.LanguageCode == languageCode {
		return Localized{Product: *src}, nil
	}

	// BFS over the equivalence relation, both directions, bounded depth.
	seen := map[uint]bool{src.ID: true}
	frontier := []uint{src.ID}
	var candidates []models.Product
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []uint
		for _, id := range frontier {
			eqs, err := s.LoadEquivalents(id)
			if err != nil {
				return Localized{}, fmt.Errorf("load equivalents of %d: %w", id, err)
			}
			for _, p := range eqs {
				if seen[p.ID] {
					continue
				}
				seen[p.ID] = true
				candidates = append(candidates, p)
				next = append(next, p.ID)
			}
		}
		frontier = next
	}

	var matches []models.Product
	for _, p := range candidates {
		if p.LanguageCode == languageCode {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		return Localized{Product: *src, FallbackUsed: true}, nil
	}
	// Deterministic tie-break: lowest product id.
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return Localized{Product: matches[0]}, nil
}
