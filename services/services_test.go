package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"evidence-service-server/models"
)

// newTestDB opens an isolated in-memory database and migrates the schema.
// Each test gets its own named memory DB so parallel tests cannot collide.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.SetupJoinTable(&models.EvidenceEntry{}, "Tags", &models.EvidenceTagAssignment{}))
	require.NoError(t, db.AutoMigrate(
		&models.Tag{},
		&models.EvidenceEntry{},
		&models.EvidenceTagAssignment{},
	))
	require.NoError(t, db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_tags_lower_name ON tags (LOWER(name))").Error)

	return db
}

// dateDaysAgo returns a date-only timestamp n days in the past
func dateDaysAgo(n int) time.Time {
	d := time.Now().AddDate(0, 0, -n)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// makeEntry inserts one evidence entry and returns it
func makeEntry(t *testing.T, db *gorm.DB, entry models.EvidenceEntry) models.EvidenceEntry {
	t.Helper()

	if entry.EmployeeID == 0 {
		entry.EmployeeID = 101
	}
	if entry.ManagerID == 0 {
		entry.ManagerID = 7
	}
	if entry.Dimension == "" {
		entry.Dimension = models.DimensionCompetencies
	}
	if entry.Rating == 0 {
		entry.Rating = 3
	}
	if entry.Status == "" {
		entry.Status = models.StatusActive
	}
	if entry.ApprovalStatus == "" {
		entry.ApprovalStatus = models.ApprovalNone
	}
	if entry.EntryDate.IsZero() {
		entry.EntryDate = dateDaysAgo(1)
	}
	require.NoError(t, db.Create(&entry).Error)
	return entry
}

// makeTag inserts one tag and returns it
func makeTag(t *testing.T, db *gorm.DB, name string) models.Tag {
	t.Helper()

	tag := models.Tag{Name: name, Color: "#808080", CreatedByID: 7}
	require.NoError(t, db.Create(&tag).Error)
	return tag
}

// compileAll compiles filter with an unrestricted scope and default bounds
func compileAll(t *testing.T, filter models.SearchFilter) *CompiledQuery {
	t.Helper()

	query, err := NewFilterCompiler(0, 0).Compile(filter, models.ActorScope{})
	require.NoError(t, err)
	return query
}

func uintPtr(v uint) *uint { return &v }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func dimPtr(v models.Dimension) *models.Dimension { return &v }

func approvalPtr(v models.ApprovalStatus) *models.ApprovalStatus { return &v }

func sourcePtr(v models.EvidenceSource) *models.EvidenceSource { return &v }

func timePtr(v time.Time) *time.Time { return &v }
