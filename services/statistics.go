package services

import (
	"gorm.io/gorm"

	"evidence-service-server/models"
)

// EvidenceStatistics summarizes a filtered evidence set
type EvidenceStatistics struct {
	TotalEntries       int64                      `json:"total_entries"`
	AverageRating      float64                    `json:"average_rating"`
	UniqueEmployees    int64                      `json:"unique_employees"`
	PositiveEntries    int64                      `json:"positive_entries"`
	RatingDistribution [5]int64                   `json:"rating_distribution"`
	DimensionCounts    map[models.Dimension]int64 `json:"dimension_counts"`
}

// StatisticsAggregator computes read-only summaries from the same compiled
// predicate set a search uses, so a stats call always agrees with the search
// it accompanies, include_archived included.
type StatisticsAggregator struct {
	db *gorm.DB
}

// NewStatisticsAggregator creates a statistics aggregator on the given
// database handle
func NewStatisticsAggregator(db *gorm.DB) *StatisticsAggregator {
	return &StatisticsAggregator{db: db}
}

// Summarize computes aggregate counts over every entry matching query,
// ignoring its pagination window
func (s *StatisticsAggregator) Summarize(query *CompiledQuery) (*EvidenceStatistics, error) {
	stats := &EvidenceStatistics{
		DimensionCounts: make(map[models.Dimension]int64, len(models.ValidDimensions)),
	}

	if err := applyPredicates(s.db, query).Count(&stats.TotalEntries).Error; err != nil {
		return nil, models.NewStorageError(err)
	}

	if err := applyPredicates(s.db, query).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&stats.AverageRating).Error; err != nil {
		return nil, models.NewStorageError(err)
	}

	if err := applyPredicates(s.db, query).
		Select("COUNT(DISTINCT employee_id)").
		Scan(&stats.UniqueEmployees).Error; err != nil {
		return nil, models.NewStorageError(err)
	}

	if err := applyPredicates(s.db, query).
		Where("rating >= ?", 4).
		Count(&stats.PositiveEntries).Error; err != nil {
		return nil, models.NewStorageError(err)
	}

	// Rating distribution (1-5 stars)
	for i := 1; i <= 5; i++ {
		var count int64
		if err := applyPredicates(s.db, query).
			Where("rating = ?", i).
			Count(&count).Error; err != nil {
			return nil, models.NewStorageError(err)
		}
		stats.RatingDistribution[i-1] = count
	}

	for _, dim := range models.ValidDimensions {
		var count int64
		if err := applyPredicates(s.db, query).
			Where("dimension = ?", string(dim)).
			Count(&count).Error; err != nil {
			return nil, models.NewStorageError(err)
		}
		stats.DimensionCounts[dim] = count
	}

	return stats, nil
}
