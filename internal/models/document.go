package models

import "time"

// DocumentVersion records one issued revision of a document for a client.
// Its fields feed the flat placeholder map of subsequent renders.
type DocumentVersion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ClientID      uint   `gorm:"not null;index:idx_version_client_type,priority:1" json:"client_id"`
	DocumentType  string `gorm:"size:50;not null;index:idx_version_client_type,priority:2" json:"document_type"`
	VersionNumber int    `gorm:"not null;default:1" json:"version_number"`

	Fields []DocumentVersionField `gorm:"foreignKey:VersionID;constraint:OnDelete:CASCADE" json:"fields,omitempty"`
}

// DocumentVersionField is one placeholder row attached to a version. Keys are
// uppercased when merged into the render context.
type DocumentVersionField struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	VersionID uint   `gorm:"not null;index" json:"version_id"`
	Key       string `gorm:"size:100;not null" json:"key"`
	Value     string `gorm:"size:500" json:"value"`
}
