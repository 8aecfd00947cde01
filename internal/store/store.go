// Package store is the gorm implementation of docctx.DataAccess. All
// methods are read-only; absence is (nil, nil), errors are infrastructure
// failures only.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/exportdocs/internal/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) LoadCompany(id uint) (*models.Company, error) {
	var c models.Company
	if err := s.db.First(&c, id).Error; err != nil {
		return nil, ignoreNotFound(err, "load company")
	}
	return &c, nil
}

func (s *Store) LoadDefaultCompany() (*models.Company, error) {
	var c models.Company
	err := s.db.Where("is_default = ?", true).Order("id").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No flagged default: fall back to the oldest company.
		err = s.db.Order("id").First(&c).Error
	}
	if err != nil {
		return nil, ignoreNotFound(err, "load default company")
	}
	return &c, nil
}

func (s *Store) LoadClient(id uint) (*models.Client, error) {
	var c models.Client
	if err := s.db.First(&c, id).Error; err != nil {
		return nil, ignoreNotFound(err, "load client")
	}
	return &c, nil
}

func (s *Store) LoadPrimaryContact(clientID uint) (*models.Contact, error) {
	var c models.Contact
	err := s.db.Where("client_id = ? AND is_primary_for_client = ?", clientID, true).
		Order("id").First(&c).Error
	if err != nil {
		return nil, ignoreNotFound(err, "load primary contact")
	}
	return &c, nil
}

func (s *Store) LoadProduct(id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, ignoreNotFound(err, "load product")
	}
	return &p, nil
}

// LoadEquivalents reads the pair table in both directions; symmetric storage
// is not assumed.
func (s *Store) LoadEquivalents(productID uint) ([]models.Product, error) {
	var ids []uint
	err := s.db.Model(&models.ProductEquivalence{}).
		Where("product_id_a = ?", productID).Pluck("product_id_b", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("load equivalents: %w", err)
	}
	var reverse []uint
	err = s.db.Model(&models.ProductEquivalence{}).
		Where("product_id_b = ?", productID).Pluck("product_id_a", &reverse).Error
	if err != nil {
		return nil, fmt.Errorf("load equivalents: %w", err)
	}
	ids = append(ids, reverse...)
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	if err := s.db.Where("id IN ?", ids).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("load equivalents: %w", err)
	}
	return products, nil
}

func (s *Store) LoadClientProducts(clientID uint) ([]models.ClientProductLink, error) {
	var links []models.ClientProductLink
	err := s.db.Preload("Product").Where("client_id = ?", clientID).Order("id").Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("load client products: %w", err)
	}
	return links, nil
}

// LoadActiveNote returns the single active note for the triple; concurrent
// actives are resolved by most recent update, then highest id.
func (s *Store) LoadActiveNote(clientID uint, documentType, languageCode string) (*models.ClientDocumentNote, error) {
	var n models.ClientDocumentNote
	err := s.db.Where("client_id = ? AND document_type = ? AND language_code = ? AND is_active = ?",
		clientID, documentType, languageCode, true).
		Order("updated_at DESC, id DESC").First(&n).Error
	if err != nil {
		return nil, ignoreNotFound(err, "load active note")
	}
	return &n, nil
}

// LoadDocumentPlaceholders flattens the fields of the latest document
// version for (client, type) into a map. No version means an empty map.
func (s *Store) LoadDocumentPlaceholders(clientID uint, documentType string) (map[string]string, error) {
	var v models.DocumentVersion
	err := s.db.Preload("Fields").
		Where("client_id = ? AND document_type = ?", clientID, documentType).
		Order("version_number DESC, id DESC").First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document placeholders: %w", err)
	}
	out := make(map[string]string, len(v.Fields))
	for _, f := range v.Fields {
		out[f.Key] = f.Value
	}
	return out, nil
}

func (s *Store) LoadTemplate(id uint) (*models.DocumentTemplate, error) {
	var t models.DocumentTemplate
	if err := s.db.First(&t, id).Error; err != nil {
		return nil, ignoreNotFound(err, "load template")
	}
	return &t, nil
}

func ignoreNotFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
