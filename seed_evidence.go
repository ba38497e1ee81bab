package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// seedEntry describes one development evidence record
type seedEntry struct {
	EmployeeID int
	ManagerID  int
	Dimension  string
	Rating     int
	Content    string
	DaysAgo    int
	Source     string
}

// seedEvidenceEntries inserts a small development data set. It runs only when
// SEED_DATA=true and skips seeding when entries already exist.
func seedEvidenceEntries() error {
	connString := os.Getenv("DB_URL")
	if connString == "" {
		return fmt.Errorf("DB_URL is required for seeding")
	}

	db, err := sql.Open("postgres", connString)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM evidence_entries").Scan(&count); err != nil {
		return fmt.Errorf("failed to count evidence entries: %w", err)
	}
	if count > 0 {
		log.Printf("ℹ️ Evidence entries already present (%d), skipping seed", count)
		return nil
	}

	entries := []seedEntry{
		{101, 7, "kpis", 5, "Closed the quarterly reporting project two weeks early", 3, "observation"},
		{101, 7, "kpis", 5, "Exceeded the support SLA target for the third month running", 9, "system"},
		{101, 7, "values", 2, "Dismissed a teammate's concern in the planning meeting", 12, "peer_feedback"},
		{102, 7, "competencies", 4, "Led the incident review and produced a clear writeup", 6, "one_on_one"},
		{102, 7, "responsibilities", 3, "Handover notes for the on-call rotation were incomplete", 15, "observation"},
		{103, 8, "values", 2, "Missed two agreed check-ins without notice", 20, "self_report"},
		{103, 8, "values", 2, "Pushed back on the code review process without proposing an alternative", 25, "peer_feedback"},
	}

	for _, e := range entries {
		entryDate := time.Now().AddDate(0, 0, -e.DaysAgo)
		_, err := db.Exec(`
			INSERT INTO evidence_entries
				(employee_id, manager_id, dimension, rating, content, entry_date,
				 status, approval_status, source, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, 'active', 'none', $7, NOW(), NOW())`,
			e.EmployeeID, e.ManagerID, e.Dimension, e.Rating, e.Content, entryDate, e.Source)
		if err != nil {
			return fmt.Errorf("failed to insert evidence entry: %w", err)
		}
	}

	tags := []struct {
		Name, Color, Description string
	}{
		{"Collaboration", "#4f8df7", "Cross-team collaboration moments"},
		{"Promotion case", "#2eb872", "Evidence collected for a promotion packet"},
		{"Follow-up", "#f7b24f", "Needs a follow-up conversation"},
	}
	for _, t := range tags {
		_, err := db.Exec(`
			INSERT INTO tags (name, color, description, created_by_id, created_at)
			VALUES ($1, $2, $3, 7, NOW())
			ON CONFLICT DO NOTHING`,
			t.Name, t.Color, t.Description)
		if err != nil {
			return fmt.Errorf("failed to insert tag: %w", err)
		}
	}

	log.Printf("✅ Seeded %d evidence entries and %d tags", len(entries), len(tags))
	return nil
}
