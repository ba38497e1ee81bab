package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"evidence-service-server/models"
)

// TagRegistry owns tags and their assignments to evidence entries. All tag
// and assignment writes go through it.
type TagRegistry struct {
	db *gorm.DB
}

// NewTagRegistry creates a tag registry on the given database handle
func NewTagRegistry(db *gorm.DB) *TagRegistry {
	return &TagRegistry{db: db}
}

// CreateTag creates a new tag. Names are unique case-insensitively; a
// duplicate yields a ConflictError rather than returning the existing tag,
// so the caller decides whether to reuse it.
func (r *TagRegistry) CreateTag(name, color, description string, creatorID uint) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("tag name must not be empty")
	}

	var existing models.Tag
	err := r.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&existing).Error
	if err == nil {
		return nil, models.NewConflictError("tag %q already exists", existing.Name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewStorageError(err)
	}

	tag := models.Tag{
		Name:        name,
		Color:       color,
		Description: description,
		CreatedByID: creatorID,
	}
	if err := r.db.Create(&tag).Error; err != nil {
		// A concurrent create of a case variant slips past the lookup above
		// and lands on the unique LOWER(name) index instead
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError("tag %q already exists", name)
		}
		return nil, models.NewStorageError(err)
	}
	return &tag, nil
}

// ListTags returns all tags ordered by name
func (r *TagRegistry) ListTags() ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return tags, nil
}

// AssignTags attaches the given tags to an entry. Creating an assignment
// that already exists is a no-op, so the call is idempotent.
func (r *TagRegistry) AssignTags(entryID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return models.NewValidationError("at least one tag ID is required")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var entryCount int64
		if err := tx.Model(&models.EvidenceEntry{}).Where("id = ?", entryID).Count(&entryCount).Error; err != nil {
			return models.NewStorageError(err)
		}
		if entryCount == 0 {
			return models.NewNotFoundError("evidence entry", entryID)
		}

		var foundIDs []uint
		if err := tx.Model(&models.Tag{}).Where("id IN ?", tagIDs).Pluck("id", &foundIDs).Error; err != nil {
			return models.NewStorageError(err)
		}
		found := make(map[uint]bool, len(foundIDs))
		for _, id := range foundIDs {
			found[id] = true
		}
		for _, id := range uniqueIDs(tagIDs) {
			if !found[id] {
				return models.NewNotFoundError("tag", id)
			}
		}

		// Skip assignments that already exist
		existing := []models.EvidenceTagAssignment{}
		if err := tx.Where("evidence_entry_id = ? AND tag_id IN ?", entryID, tagIDs).
			Find(&existing).Error; err != nil {
			return models.NewStorageError(err)
		}
		present := make(map[uint]bool, len(existing))
		for _, a := range existing {
			present[a.TagID] = true
		}

		for _, tagID := range uniqueIDs(tagIDs) {
			if present[tagID] {
				continue
			}
			assignment := models.EvidenceTagAssignment{
				EvidenceEntryID: entryID,
				TagID:           tagID,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return models.NewStorageError(err)
			}
		}
		return nil
	})
}

// RemoveAssignment detaches one tag from an entry. Removing an assignment
// that does not exist is a no-op.
func (r *TagRegistry) RemoveAssignment(entryID, tagID uint) error {
	err := r.db.Where("evidence_entry_id = ? AND tag_id = ?", entryID, tagID).
		Delete(&models.EvidenceTagAssignment{}).Error
	if err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
