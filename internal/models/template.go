package models

import "time"

// Template file formats.
const (
	TemplateTypeHTML = "html"
	TemplateTypeXLSX = "xlsx"
	TemplateTypeDOCX = "docx"
)

// Document types understood by the context assembler. Any other string is
// accepted and passed through; only the packing-list pair changes behaviour.
const (
	DocumentTypeProforma        = "proforma"
	DocumentTypePackingList     = "packing_list"
	DocumentTypeHTMLPackingList = "HTML_PACKING_LIST"
	DocumentTypeSalesContract   = "sales_contract"
	DocumentTypeTechnicalSpec   = "technical_specification"
)

// IsPackingList reports whether a document type triggers the price-exclusion
// rule: no product prices anywhere in the rendered output.
func IsPackingList(documentType string) bool {
	return documentType == DocumentTypePackingList || documentType == DocumentTypeHTMLPackingList
}

// DocumentTemplate references a template file on disk, resolved against the
// configured template directory.
type DocumentTemplate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	LanguageCode    string `gorm:"size:8;not null;index" json:"language_code"`
	BaseFileName    string `gorm:"size:255;not null" json:"base_file_name"`
	TemplateType    string `gorm:"size:20;not null" json:"template_type"`
	CategoryPurpose string `gorm:"size:50;index" json:"category_purpose,omitempty"`
}
