package models

import "time"

// Client is a buyer the documents are addressed to. Address fields may all
// be empty; the assembler then falls back to the primary contact or to
// additional-context overrides.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DisplayName       string `gorm:"size:255;not null;index" json:"display_name"`
	CompanyName       string `gorm:"size:255;index" json:"company_name,omitempty"`
	ProjectIdentifier string `gorm:"size:100" json:"project_identifier,omitempty"`

	CountryName  string `gorm:"size:100" json:"country_name,omitempty"`
	CityName     string `gorm:"size:100" json:"city_name,omitempty"`
	PostalCode   string `gorm:"size:20" json:"postal_code,omitempty"`
	AddressLine1 string `gorm:"size:500" json:"address_line1,omitempty"`

	Email string `gorm:"size:255" json:"email,omitempty"`
	Phone string `gorm:"size:50" json:"phone,omitempty"`

	// Notes and DistributorSpecificInfo are semi-structured; VAT and
	// registration numbers are extracted from them when present.
	Notes                   string `gorm:"type:text" json:"notes,omitempty"`
	DistributorSpecificInfo string `gorm:"type:text" json:"distributor_specific_info,omitempty"`

	Contacts []Contact `gorm:"foreignKey:ClientID" json:"contacts,omitempty"`
}

// Contact is a person attached to a client. At most one contact per client
// should carry IsPrimaryForClient; the store picks the lowest id if several do.
type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientID uint `gorm:"not null;index" json:"client_id"`

	DisplayName string `gorm:"size:255" json:"display_name,omitempty"`
	GivenName   string `gorm:"size:100" json:"given_name,omitempty"`
	FamilyName  string `gorm:"size:100" json:"family_name,omitempty"`
	Email       string `gorm:"size:255" json:"email,omitempty"`
	Phone       string `gorm:"size:50" json:"phone,omitempty"`

	StreetAddress string `gorm:"size:500" json:"street_address,omitempty"`
	City          string `gorm:"size:100" json:"city,omitempty"`
	PostalCode    string `gorm:"size:20" json:"postal_code,omitempty"`
	Country       string `gorm:"size:100" json:"country,omitempty"`

	IsPrimaryForClient bool `gorm:"not null;default:false;index" json:"is_primary_for_client"`
}

// FullName returns the display name, or the given/family names joined.
func (c *Contact) FullName() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	switch {
	case c.GivenName != "" && c.FamilyName != "":
		return c.GivenName + " " + c.FamilyName
	case c.GivenName != "":
		return c.GivenName
	default:
		return c.FamilyName
	}
}
