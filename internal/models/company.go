package models

import "time"

// Company is a seller entity on whose behalf documents are issued.
// PaymentInfo and OtherInfo are semi-structured: JSON, "KEY: value;" pairs,
// or free prose. Normalisation happens in the fieldparse package only.
type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	LegalName string `gorm:"size:255;not null;index" json:"legal_name"`
	Email     string `gorm:"size:255" json:"email,omitempty"`
	Phone     string `gorm:"size:50" json:"phone,omitempty"`
	Website   string `gorm:"size:255" json:"website,omitempty"`

	// Address is free text as typed by the user; structured parts
	// (city, postal code, country) may come from additional context.
	Address string `gorm:"size:500" json:"address,omitempty"`

	PaymentInfo string `gorm:"type:text" json:"payment_info,omitempty"`
	OtherInfo   string `gorm:"type:text" json:"other_info,omitempty"`

	// LogoPath is the raw reference as stored; callers resolve it
	// against their logo directory.
	LogoPath string `gorm:"size:500" json:"logo_path,omitempty"`

	IsDefault bool `gorm:"not null;default:false;index" json:"is_default"`
}
