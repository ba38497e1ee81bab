package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evidence-service-server/models"
)

func TestSearchExcludesArchivedByDefault(t *testing.T) {
	db := newTestDB(t)
	store := NewEntryStore(db)

	for i := 0; i < 10; i++ {
		makeEntry(t, db, models.EvidenceEntry{EntryDate: dateDaysAgo(i + 1)})
	}
	reason := "outdated"
	for i := 0; i < 3; i++ {
		makeEntry(t, db, models.EvidenceEntry{
			Status:        models.StatusArchived,
			ArchiveReason: &reason,
			EntryDate:     dateDaysAgo(i + 1),
		})
	}

	_, total, err := store.Search(compileAll(t, models.SearchFilter{}))
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)

	_, total, err = store.Search(compileAll(t, models.SearchFilter{IncludeArchived: true}))
	require.NoError(t, err)
	assert.Equal(t, int64(13), total)
}

func TestSearchRatingRange(t *testing.T) {
	db := newTestDB(t)
	store := NewEntryStore(db)

	makeEntry(t, db, models.EvidenceEntry{Rating: 3})

	_, total, err := store.Search(compileAll(t, models.SearchFilter{MinRating: intPtr(4)}))
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, total, err = store.Search(compileAll(t, models.SearchFilter{
		MinRating: intPtr(3),
		MaxRating: intPtr(5),
	}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestSearchDimensionAndRatingScenario(t *testing.T) {
	db := newTestDB(t)
	store := NewEntryStore(db)

	// 2 strong kpis entries and 3 weak values entries within the last 30 days
	makeEntry(t, db, models.EvidenceEntry{Dimension: models.DimensionKPIs, Rating: 5, EntryDate: dateDaysAgo(3)})
	makeEntry(t, db, models.EvidenceEntry{Dimension: models.DimensionKPIs, Rating: 5, EntryDate: dateDaysAgo(9)})
	for i := 0; i < 3; i++ {
		makeEntry(t, db, models.EvidenceEntry{Dimension: models.DimensionValues, Rating: 2, EntryDate: dateDaysAgo(12 + i)})
	}

	entries, total, err := store.Search(compileAll(t, models.SearchFilter{
		Dimension: dimPtr(models.DimensionKPIs),
		MinRating: intPtr(4),
	}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, models.DimensionKPIs, e.Dimension)
		assert.GreaterOrEqual(t, e.Rating, 4)
	}
}

func TestSearchPaginationIsStable(t *testing.T) {
	db := newTestDB(t)
	store := NewEntryStore(db)

	// Same entry_date everywhere so ordering falls to the ID tie-break
	for i := 0; i < 7; i++ {
		makeEntry(t, db, models.EvidenceEntry{EntryDate: dateDaysAgo(2)})
	}

	query := compileAll(t, models.SearchFilter{Page: 1, Limit: 3})
	first, total, err := store.Search(query)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, first, 3)

	// Re-running the same compiled query returns the identical page
	again, _, err := store.Search(query)
	require.NoError(t, err)
	require.Len(t, again, 3)
	for i := range first {
		assert.Equal(t, first[i].ID, again[i].ID)
	}

	// Pages never overlap and cover all rows
	seen := map[uint]bool{}
	for page := 1; page <= 3; page++ {
		entries, _, err := store.Search(compileAll(t, models.SearchFilter{Page: page, Limit: 3}))
		require.NoError(t, err)
		assert.LessOrEqual(t, len(entries), 3)
		for _, e := range entries {
			assert.False(t, seen[e.ID], "entry %d appeared on two pages", e.ID)
			seen[e.ID] = true
		}
	}
	assert.Len(t, seen, 7)
}

func TestSearchOrdersByEntryDateDescending(t *testing.T) {
	db := newTestDB(t)
	store := NewEntryStore(db)

	old := makeEntry(t, db, models.EvidenceEntry{EntryDate: dateDaysAgo(20)})
	recent := makeEntry(t, db, models.EvidenceEntry{EntryDate: dateDaysAgo(1)})

	entries, _, err := store.Search(compileAll(t, models.SearchFilter{}))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, recent.ID, entries[0].ID)
	assert.Equal(t, old.ID, entries[1].ID)
}

func TestSearchTextFilterIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	store := NewEntryStore(db)

	match := makeEntry(t, db, models.EvidenceEntry{Content: "Closed the Quarterly report early"})
	makeEntry(t, db, models.EvidenceEntry{Content: "Missed two check-ins"})

	entries, total, err := store.Search(compileAll(t, models.SearchFilter{Text: strPtr("quarterly")}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	assert.Equal(t, match.ID, entries[0].ID)
}

func TestSearchTagFilterRequiresAllTags(t *testing.T) {
	db := newTestDB(t)
	store := NewEntryStore(db)
	registry := NewTagRegistry(db)

	collab := makeTag(t, db, "Collaboration")
	promo := makeTag(t, db, "Promotion case")

	both := makeEntry(t, db, models.EvidenceEntry{})
	onlyCollab := makeEntry(t, db, models.EvidenceEntry{})
	makeEntry(t, db, models.EvidenceEntry{})

	require.NoError(t, registry.AssignTags(both.ID, []uint{collab.ID, promo.ID}))
	require.NoError(t, registry.AssignTags(onlyCollab.ID, []uint{collab.ID}))

	// Single tag matches every entry carrying it
	entries, total, err := store.Search(compileAll(t, models.SearchFilter{TagIDs: []uint{collab.ID}}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	ids := []uint{entries[0].ID, entries[1].ID}
	assert.Contains(t, ids, both.ID)
	assert.Contains(t, ids, onlyCollab.ID)

	// Multiple tags match only entries carrying every one of them
	entries, total, err = store.Search(compileAll(t, models.SearchFilter{TagIDs: []uint{collab.ID, promo.ID}}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	assert.Equal(t, both.ID, entries[0].ID)

	// A tag set nothing carries matches no entries
	entries, total, err = store.Search(compileAll(t, models.SearchFilter{TagIDs: []uint{promo.ID, 9999}}))
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, entries)
}

func TestSearchScopeRestrictsVisibility(t *testing.T) {
	db := newTestDB(t)
	store := NewEntryStore(db)

	mine := makeEntry(t, db, models.EvidenceEntry{EmployeeID: 101})
	makeEntry(t, db, models.EvidenceEntry{EmployeeID: 202})

	scope := models.ActorScope{EmployeeIDs: []uint{101}}
	query, err := NewFilterCompiler(0, 0).Compile(models.SearchFilter{}, scope)
	require.NoError(t, err)

	entries, total, err := store.Search(query)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	assert.Equal(t, mine.ID, entries[0].ID)
}

func TestGetLoadsEntryWithTags(t *testing.T) {
	db := newTestDB(t)
	store := NewEntryStore(db)
	registry := NewTagRegistry(db)

	tag := makeTag(t, db, "Follow-up")
	entry := makeEntry(t, db, models.EvidenceEntry{})
	require.NoError(t, registry.AssignTags(entry.ID, []uint{tag.ID}))

	loaded, err := store.Get(entry.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Tags, 1)
	assert.Equal(t, "Follow-up", loaded.Tags[0].Name)

	_, err = store.Get(9999)
	var notFound *models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUpdateDimension(t *testing.T) {
	db := newTestDB(t)
	store := NewEntryStore(db)

	entry := makeEntry(t, db, models.EvidenceEntry{Dimension: models.DimensionValues})

	require.NoError(t, store.UpdateDimension(entry.ID, models.DimensionKPIs))

	loaded, err := store.Get(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DimensionKPIs, loaded.Dimension)

	var validationErr *models.ValidationError
	assert.ErrorAs(t, store.UpdateDimension(entry.ID, "attitude"), &validationErr)

	var notFound *models.NotFoundError
	assert.ErrorAs(t, store.UpdateDimension(9999, models.DimensionKPIs), &notFound)
}

func TestDeleteRemovesEntryAndAssignments(t *testing.T) {
	db := newTestDB(t)
	store := NewEntryStore(db)
	registry := NewTagRegistry(db)

	tag := makeTag(t, db, "Follow-up")
	entry := makeEntry(t, db, models.EvidenceEntry{})
	require.NoError(t, registry.AssignTags(entry.ID, []uint{tag.ID}))

	require.NoError(t, store.Delete(entry.ID))

	_, err := store.Get(entry.ID)
	var notFound *models.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	var assignments int64
	require.NoError(t, db.Model(&models.EvidenceTagAssignment{}).
		Where("evidence_entry_id = ?", entry.ID).Count(&assignments).Error)
	assert.Zero(t, assignments)

	assert.ErrorAs(t, store.Delete(entry.ID), &notFound)
}
