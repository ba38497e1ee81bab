package services

import (
	"errors"

	"gorm.io/gorm"

	"evidence-service-server/models"
)

// EntryStore executes compiled queries and single-entry mutations against the
// evidence_entries table
type EntryStore struct {
	db *gorm.DB
}

// NewEntryStore creates an entry store on the given database handle
func NewEntryStore(db *gorm.DB) *EntryStore {
	return &EntryStore{db: db}
}

// applyPredicates attaches a compiled query's conditions to a GORM query.
// Tag filtering uses AND semantics: an entry matches only if it carries every
// requested tag, checked through a grouped subquery on the join table.
func applyPredicates(db *gorm.DB, query *CompiledQuery) *gorm.DB {
	q := db.Model(&models.EvidenceEntry{})
	for _, p := range query.Predicates {
		q = q.Where(p.Expr, p.Args...)
	}
	if len(query.TagIDs) > 0 {
		sub := db.Table("evidence_tag_assignments").
			Select("evidence_entry_id").
			Where("tag_id IN ?", query.TagIDs).
			Group("evidence_entry_id").
			Having("COUNT(DISTINCT tag_id) = ?", len(query.TagIDs))
		q = q.Where("evidence_entries.id IN (?)", sub)
	}
	return q
}

// Search runs a compiled query and returns one page of entries plus the total
// match count before pagination. An empty result is not an error; only a
// storage fault is.
func (s *EntryStore) Search(query *CompiledQuery) ([]models.EvidenceEntry, int64, error) {
	q := applyPredicates(s.db, query)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewStorageError(err)
	}

	entries := []models.EvidenceEntry{}
	if err := q.
		Preload("Tags").
		Order(query.SortExpr).
		Offset(query.Offset).
		Limit(query.Limit).
		Find(&entries).Error; err != nil {
		return nil, 0, models.NewStorageError(err)
	}

	return entries, total, nil
}

// Get loads a single entry with its tags
func (s *EntryStore) Get(id uint) (*models.EvidenceEntry, error) {
	var entry models.EvidenceEntry
	if err := s.db.Preload("Tags").First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("evidence entry", id)
		}
		return nil, models.NewStorageError(err)
	}
	return &entry, nil
}

// UpdateDimension recategorizes one entry under a new dimension
func (s *EntryStore) UpdateDimension(id uint, dimension models.Dimension) error {
	if !dimension.IsValid() {
		return models.NewValidationError("invalid dimension %q", string(dimension))
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.EvidenceEntry{}).
			Where("id = ?", id).
			Update("dimension", dimension)
		if res.Error != nil {
			return models.NewStorageError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("evidence entry", id)
		}
		return nil
	})
}

// Delete hard-deletes one entry and its tag assignments in a single
// transaction. There is no soft delete besides archiving.
func (s *EntryStore) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("evidence_entry_id = ?", id).
			Delete(&models.EvidenceTagAssignment{}).Error; err != nil {
			return models.NewStorageError(err)
		}
		res := tx.Delete(&models.EvidenceEntry{}, id)
		if res.Error != nil {
			return models.NewStorageError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("evidence entry", id)
		}
		return nil
	})
}
