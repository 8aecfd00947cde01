package localize

import (
	"testing"

	"github.com/diewo77/exportdocs/internal/docerr"
	"github.com/diewo77/exportdocs/internal/models"
)

// fakeStore serves products and a directed equivalence map; pairs are
// deliberately stored one-way to mimic asymmetric storage.
type fakeStore struct {
	products map[uint]models.Product
	edges    map[uint][]uint
}

func (f *fakeStore) LoadProduct(id uint) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeStore) LoadEquivalents(id uint) ([]models.Product, error) {
	var out []models.Product
	for _, e := range f.edges[id] {
		if p, ok := f.products[e]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: map[uint]models.Product{
			7:  {ID: 7, Name: "Widget", LanguageCode: "en", BaseUnitPrice: 10},
			8:  {ID: 8, Name: "Gadget", LanguageCode: "fr", BaseUnitPrice: 10},
			9:  {ID: 9, Name: "Aygıt", LanguageCode: "tr", BaseUnitPrice: 10},
			10: {ID: 10, Name: "Gadget bis", LanguageCode: "fr", BaseUnitPrice: 11},
		},
		// 7 <-> 8 stored as one row, 8 <-> 9 as another: reaching tr
		// from en takes two hops.
		edges: map[uint][]uint{
			7: {8},
			8: {7, 9},
			9: {8},
		},
	}
}

func TestResolveSameLanguage(t *testing.T) {
	s := newFakeStore()
	got, err := Resolve(s, 7, "en")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.ID != 7 || got.FallbackUsed {
		t.Fatalf("expected source product untouched, got %+v", got)
	}
}

func TestResolveDirectEquivalent(t *testing.T) {
	s := newFakeStore()
	got, err := Resolve(s, 7, "fr")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Name != "Gadget" || got.FallbackUsed {
		t.Fatalf("expected Gadget, got %+v", got)
	}
}

func TestResolveTwoHops(t *testing.T) {
	s := newFakeStore()
	got, err := Resolve(s, 7, "tr")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Name != "Aygıt" {
		t.Fatalf("expected turkish equivalent through pivot, got %+v", got)
	}
}

func TestResolveReverseDirection(t *testing.T) {
	// edge stored as 7->8 only; resolution from 8 must still find 7
	s := newFakeStore()
	s.edges = map[uint][]uint{7: {8}}
	// fake store is directed, so simulate the both-ways read the real
	// store performs
	s.edges[8] = []uint{7}
	got, err := Resolve(s, 8, "en")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Name != "Widget" {
		t.Fatalf("expected Widget, got %+v", got)
	}
}

func TestResolveTieBreakLowestID(t *testing.T) {
	s := newFakeStore()
	s.edges[7] = []uint{10, 8}
	got, err := Resolve(s, 7, "fr")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.ID != 8 {
		t.Fatalf("expected lowest id 8, got %d", got.ID)
	}
}

func TestResolveFallback(t *testing.T) {
	s := newFakeStore()
	got, err := Resolve(s, 7, "ar")
	if err != nil {
		t.Fatalf("missing translation must not fail: %v", err)
	}
	if !got.FallbackUsed || got.ID != 7 {
		t.Fatalf("expected flagged fallback to source, got %+v", got)
	}
}

func TestResolveUnknownProduct(t *testing.T) {
	s := newFakeStore()
	_, err := Resolve(s, 999, "en")
	if !docerr.IsKind(err, docerr.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
