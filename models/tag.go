package models

import "time"

// Tag is a named label attachable to many evidence entries
type Tag struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(64);not null;uniqueIndex"`
	Color       string    `json:"color" gorm:"type:varchar(16)"`
	Description string    `json:"description" gorm:"type:varchar(255)"`
	CreatedByID uint      `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName sets custom table name
func (Tag) TableName() string { return "tags" }

// EvidenceTagAssignment is the join row between an evidence entry and a tag.
// Rows are created and removed, never updated in place.
type EvidenceTagAssignment struct {
	EvidenceEntryID uint      `json:"evidence_entry_id" gorm:"primaryKey"`
	TagID           uint      `json:"tag_id" gorm:"primaryKey"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName sets custom table name
func (EvidenceTagAssignment) TableName() string { return "evidence_tag_assignments" }
