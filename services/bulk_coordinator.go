package services

import (
	"fmt"

	"gorm.io/gorm"

	"evidence-service-server/models"
)

// BulkCoordinator applies one operation across a set of entry IDs with
// per-item outcome tracking. Each entry is mutated in its own atomic unit;
// there is no cross-entry transaction, so one entry's failure never aborts
// the batch and concurrent bulk calls over overlapping IDs may interleave.
type BulkCoordinator struct {
	store     *EntryStore
	lifecycle *ArchiveLifecycle
	tags      *TagRegistry
}

// NewBulkCoordinator creates a bulk coordinator over the given services
func NewBulkCoordinator(db *gorm.DB) *BulkCoordinator {
	return &BulkCoordinator{
		store:     NewEntryStore(db),
		lifecycle: NewArchiveLifecycle(db),
		tags:      NewTagRegistry(db),
	}
}

// Apply runs op against every entry ID in the order supplied. An empty ID
// list or an invalid operation payload is a caller error and fails before any
// entry is touched. Afterwards SuccessCount+FailedCount always equals
// len(entryIDs).
func (b *BulkCoordinator) Apply(entryIDs []uint, op models.BulkOperation) (*models.BulkOperationResult, error) {
	if len(entryIDs) == 0 {
		return nil, models.NewValidationError("entry_ids must not be empty")
	}
	if op == nil {
		return nil, models.NewValidationError("operation is required")
	}
	if err := op.Validate(); err != nil {
		return nil, err
	}

	result := &models.BulkOperationResult{Errors: []string{}}
	for _, id := range entryIDs {
		if err := b.applyOne(id, op); err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("entry %d: %v", id, err))
			continue
		}
		result.SuccessCount++
	}
	return result, nil
}

// applyOne dispatches the single-entry equivalent of op. The type switch is
// exhaustive over the closed operation set.
func (b *BulkCoordinator) applyOne(entryID uint, op models.BulkOperation) error {
	switch v := op.(type) {
	case models.ArchiveOp:
		return b.lifecycle.Archive(entryID, v.Reason)
	case models.DeleteOp:
		return b.store.Delete(entryID)
	case models.UpdateDimensionOp:
		return b.store.UpdateDimension(entryID, v.NewDimension)
	case models.AddTagsOp:
		return b.tags.AssignTags(entryID, v.TagIDs)
	default:
		return models.NewValidationError("unsupported bulk operation %q", op.OpName())
	}
}
