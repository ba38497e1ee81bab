package models

import (
	"time"
)

// Dimension is the fixed performance category an evidence entry is filed under
type Dimension string

const (
	DimensionResponsibilities Dimension = "responsibilities"
	DimensionKPIs             Dimension = "kpis"
	DimensionCompetencies     Dimension = "competencies"
	DimensionValues           Dimension = "values"
)

// ValidDimensions lists every accepted dimension value
var ValidDimensions = []Dimension{
	DimensionResponsibilities,
	DimensionKPIs,
	DimensionCompetencies,
	DimensionValues,
}

// IsValid reports whether d is one of the fixed dimensions
func (d Dimension) IsValid() bool {
	for _, v := range ValidDimensions {
		if d == v {
			return true
		}
	}
	return false
}

// EntryStatus is the archival state of an evidence entry
type EntryStatus string

const (
	StatusActive   EntryStatus = "active"
	StatusArchived EntryStatus = "archived"
)

// ApprovalStatus tracks the optional review state of an entry
type ApprovalStatus string

const (
	ApprovalNone     ApprovalStatus = "none"
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// IsValid reports whether a is a known approval status
func (a ApprovalStatus) IsValid() bool {
	switch a {
	case ApprovalNone, ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// EvidenceSource records where an evidence entry originated
type EvidenceSource string

const (
	SourceObservation  EvidenceSource = "observation"
	SourceOneOnOne     EvidenceSource = "one_on_one"
	SourcePeerFeedback EvidenceSource = "peer_feedback"
	SourceSelfReport   EvidenceSource = "self_report"
	SourceSystem       EvidenceSource = "system"
)

// IsValid reports whether s is a known evidence source
func (s EvidenceSource) IsValid() bool {
	switch s {
	case SourceObservation, SourceOneOnOne, SourcePeerFeedback, SourceSelfReport, SourceSystem:
		return true
	}
	return false
}

// EvidenceEntry represents a dated, rated observation about an employee
// along one performance dimension
type EvidenceEntry struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	EmployeeID      uint            `json:"employee_id" gorm:"not null;index"`
	ManagerID       uint            `json:"manager_id" gorm:"not null;index"`
	Dimension       Dimension       `json:"dimension" gorm:"type:varchar(32);not null;index"`
	Rating          int             `json:"rating" gorm:"type:int;not null;check:rating >= 1 AND rating <= 5"`
	Content         string          `json:"content" gorm:"type:text"`
	EntryDate       time.Time       `json:"entry_date" gorm:"type:date;not null;index"`
	Status          EntryStatus     `json:"status" gorm:"type:varchar(16);not null;default:active;index"`
	ArchiveReason   *string         `json:"archive_reason,omitempty" gorm:"type:varchar(255)"`
	AttachmentCount int             `json:"attachment_count" gorm:"not null;default:0"`
	ApprovalStatus  ApprovalStatus  `json:"approval_status" gorm:"type:varchar(16);not null;default:none"`
	Source          *EvidenceSource `json:"source,omitempty" gorm:"type:varchar(32)"`
	Tags            []Tag           `json:"tags" gorm:"many2many:evidence_tag_assignments;joinForeignKey:EvidenceEntryID;joinReferences:TagID"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName sets custom table name
func (EvidenceEntry) TableName() string { return "evidence_entries" }

// IsArchived reports whether the entry is in the archived state
func (e *EvidenceEntry) IsArchived() bool {
	return e.Status == StatusArchived
}
