package models

import "time"

// ClientDocumentNote is a per-client footer note keyed by (client, document
// type, language). At most one active note per triple; when several are
// active the most recently updated one wins.
type ClientDocumentNote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientID     uint   `gorm:"not null;index:idx_note_triple,priority:1" json:"client_id"`
	DocumentType string `gorm:"size:50;not null;index:idx_note_triple,priority:2" json:"document_type"`
	LanguageCode string `gorm:"size:8;not null;index:idx_note_triple,priority:3" json:"language_code"`

	NoteContent string `gorm:"type:text" json:"note_content"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
}
