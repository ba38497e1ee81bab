package services

import (
	"errors"

	"gorm.io/gorm"

	"evidence-service-server/models"
)

// ArchiveLifecycle governs the active/archived state machine of an evidence
// entry. The only transitions are active→archived and archived→active;
// deletion is a separate, non-reversible operation handled by the EntryStore.
type ArchiveLifecycle struct {
	db *gorm.DB
}

// NewArchiveLifecycle creates an archive lifecycle on the given database handle
func NewArchiveLifecycle(db *gorm.DB) *ArchiveLifecycle {
	return &ArchiveLifecycle{db: db}
}

// Archive moves an active entry to archived with the given reason.
// Re-archiving an archived entry fails with InvalidStateError so caller bugs
// surface instead of being swallowed.
func (a *ArchiveLifecycle) Archive(entryID uint, reason string) error {
	if reason == "" {
		return models.NewValidationError("archive reason must not be empty")
	}
	return a.db.Transaction(func(tx *gorm.DB) error {
		var entry models.EvidenceEntry
		if err := tx.First(&entry, entryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("evidence entry", entryID)
			}
			return models.NewStorageError(err)
		}
		if entry.Status == models.StatusArchived {
			return models.NewInvalidStateError("evidence entry %d is already archived", entryID)
		}
		err := tx.Model(&entry).Updates(map[string]interface{}{
			"status":         models.StatusArchived,
			"archive_reason": reason,
		}).Error
		if err != nil {
			return models.NewStorageError(err)
		}
		return nil
	})
}

// Restore moves an archived entry back to active and clears its archive
// reason. Restoring an active entry fails with InvalidStateError.
func (a *ArchiveLifecycle) Restore(entryID uint) error {
	return a.db.Transaction(func(tx *gorm.DB) error {
		var entry models.EvidenceEntry
		if err := tx.First(&entry, entryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("evidence entry", entryID)
			}
			return models.NewStorageError(err)
		}
		if entry.Status == models.StatusActive {
			return models.NewInvalidStateError("evidence entry %d is not archived", entryID)
		}
		err := tx.Model(&entry).Updates(map[string]interface{}{
			"status":         models.StatusActive,
			"archive_reason": nil,
		}).Error
		if err != nil {
			return models.NewStorageError(err)
		}
		return nil
	})
}
