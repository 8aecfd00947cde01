package models

import "time"

// Product is language-bound: the same physical item sold in two languages is
// two rows, tied together through ProductEquivalence. (Name, LanguageCode)
// is unique.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string `gorm:"size:255;not null;index:idx_product_name_lang,unique,priority:1" json:"name"`
	LanguageCode string `gorm:"size:8;not null;index:idx_product_name_lang,unique,priority:2" json:"language_code"`

	Description   string  `gorm:"type:text" json:"description,omitempty"`
	BaseUnitPrice float64 `gorm:"not null" json:"base_unit_price"`
	UnitOfMeasure string  `gorm:"size:50" json:"unit_of_measure,omitempty"`
	WeightKg      float64 `json:"weight_kg,omitempty"`
	Dimensions    string  `gorm:"size:100" json:"dimensions,omitempty"`
}

// ProductEquivalence declares that two language-bound product rows describe
// the same physical item. The pair is unordered; readers must consult both
// directions since symmetric storage is not guaranteed.
type ProductEquivalence struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProductIDA uint `gorm:"not null;index" json:"product_id_a"`
	ProductIDB uint `gorm:"not null;index" json:"product_id_b"`
}

// ClientProductLink associates a product with a client. UnitPriceOverride,
// when non-nil, is authoritative over the product's base price.
type ClientProductLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientID  uint    `gorm:"not null;index" json:"client_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`

	Quantity          float64  `gorm:"not null;default:1" json:"quantity"`
	UnitPriceOverride *float64 `json:"unit_price_override,omitempty"`
}

// EffectiveUnitPrice applies the override when present.
func (l *ClientProductLink) EffectiveUnitPrice() float64 {
	if l.UnitPriceOverride != nil {
		return *l.UnitPriceOverride
	}
	return l.Product.BaseUnitPrice
}
