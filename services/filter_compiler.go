package services

import (
	"strings"

	"evidence-service-server/models"
)

const (
	// DefaultPageSize applies when a search request carries no limit
	DefaultPageSize = 20
	// MaxPageSize caps the limit a caller may request
	MaxPageSize = 100
)

// Predicate is one AND-combined filter condition ready for execution
type Predicate struct {
	Expr string
	Args []interface{}
}

// CompiledQuery is a validated search request: an ordered predicate list, the
// tag set (matched with AND semantics, so an entry must carry every listed
// tag), a deterministic sort, and a pagination window. Re-executing the same
// CompiledQuery without intervening writes yields the same page.
type CompiledQuery struct {
	Predicates      []Predicate
	TagIDs          []uint
	IncludeArchived bool
	SortExpr        string
	Page            int
	Limit           int
	Offset          int
}

// FilterCompiler validates a SearchFilter and actor scope into a
// CompiledQuery. It is a pure transformation; it never touches storage.
type FilterCompiler struct {
	defaultLimit int
	maxLimit     int
}

// NewFilterCompiler creates a filter compiler with the given pagination bounds
func NewFilterCompiler(defaultLimit, maxLimit int) *FilterCompiler {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageSize
	}
	if maxLimit <= 0 {
		maxLimit = MaxPageSize
	}
	return &FilterCompiler{defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// Compile validates filter against scope and produces a CompiledQuery.
// Absent fields add no constraint; malformed present fields fail with a
// ValidationError. Predicates are AND-combined across filter families.
func (fc *FilterCompiler) Compile(filter models.SearchFilter, scope models.ActorScope) (*CompiledQuery, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	query := &CompiledQuery{
		IncludeArchived: filter.IncludeArchived,
		SortExpr:        "entry_date DESC, id DESC",
	}

	// Scope narrows visibility regardless of what the filter asks for
	if len(scope.EmployeeIDs) > 0 {
		query.add("employee_id IN ?", scope.EmployeeIDs)
	}
	if scope.ManagerID != nil {
		query.add("manager_id = ?", *scope.ManagerID)
	}

	// Archived entries stay out of results unless explicitly requested
	if !filter.IncludeArchived {
		query.add("status = ?", string(models.StatusActive))
	}

	if filter.Text != nil && *filter.Text != "" {
		query.add("LOWER(content) LIKE ?", "%"+strings.ToLower(*filter.Text)+"%")
	}
	if filter.EmployeeID != nil {
		query.add("employee_id = ?", *filter.EmployeeID)
	}
	if filter.ManagerID != nil {
		query.add("manager_id = ?", *filter.ManagerID)
	}
	if filter.Dimension != nil {
		query.add("dimension = ?", string(*filter.Dimension))
	}
	if filter.MinRating != nil {
		query.add("rating >= ?", *filter.MinRating)
	}
	if filter.MaxRating != nil {
		query.add("rating <= ?", *filter.MaxRating)
	}
	if filter.StartDate != nil {
		query.add("entry_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query.add("entry_date <= ?", *filter.EndDate)
	}
	if filter.ContentLengthMin != nil {
		query.add("LENGTH(content) >= ?", *filter.ContentLengthMin)
	}
	if filter.ContentLengthMax != nil {
		query.add("LENGTH(content) <= ?", *filter.ContentLengthMax)
	}
	if filter.HasAttachments != nil {
		if *filter.HasAttachments {
			query.add("attachment_count > 0")
		} else {
			query.add("attachment_count = 0")
		}
	}
	if filter.ApprovalStatus != nil {
		query.add("approval_status = ?", string(*filter.ApprovalStatus))
	}
	if filter.Source != nil {
		query.add("source = ?", string(*filter.Source))
	}

	query.TagIDs = filter.TagIDs

	// Pagination window
	page := filter.Page
	if page == 0 {
		page = 1
	}
	limit := filter.Limit
	if limit == 0 {
		limit = fc.defaultLimit
	}
	if limit > fc.maxLimit {
		limit = fc.maxLimit
	}
	query.Page = page
	query.Limit = limit
	query.Offset = (page - 1) * limit

	return query, nil
}

func (q *CompiledQuery) add(expr string, args ...interface{}) {
	q.Predicates = append(q.Predicates, Predicate{Expr: expr, Args: args})
}

// validateFilter rejects malformed bounds; absence is never an error
func validateFilter(f models.SearchFilter) error {
	if f.MinRating != nil && (*f.MinRating < 1 || *f.MinRating > 5) {
		return models.NewValidationError("min_rating must be between 1 and 5, got %d", *f.MinRating)
	}
	if f.MaxRating != nil && (*f.MaxRating < 1 || *f.MaxRating > 5) {
		return models.NewValidationError("max_rating must be between 1 and 5, got %d", *f.MaxRating)
	}
	if f.MinRating != nil && f.MaxRating != nil && *f.MinRating > *f.MaxRating {
		return models.NewValidationError("min_rating %d exceeds max_rating %d", *f.MinRating, *f.MaxRating)
	}
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return models.NewValidationError("start_date is after end_date")
	}
	if f.ContentLengthMin != nil && *f.ContentLengthMin < 0 {
		return models.NewValidationError("content_length_min must not be negative")
	}
	if f.ContentLengthMax != nil && *f.ContentLengthMax < 0 {
		return models.NewValidationError("content_length_max must not be negative")
	}
	if f.ContentLengthMin != nil && f.ContentLengthMax != nil && *f.ContentLengthMin > *f.ContentLengthMax {
		return models.NewValidationError("content_length_min %d exceeds content_length_max %d",
			*f.ContentLengthMin, *f.ContentLengthMax)
	}
	if f.Dimension != nil && !f.Dimension.IsValid() {
		return models.NewValidationError("invalid dimension %q", string(*f.Dimension))
	}
	if f.ApprovalStatus != nil && !f.ApprovalStatus.IsValid() {
		return models.NewValidationError("invalid approval_status %q", string(*f.ApprovalStatus))
	}
	if f.Source != nil && !f.Source.IsValid() {
		return models.NewValidationError("invalid evidence_source %q", string(*f.Source))
	}
	if f.Page < 0 {
		return models.NewValidationError("page must be at least 1, got %d", f.Page)
	}
	if f.Limit < 0 {
		return models.NewValidationError("limit must not be negative, got %d", f.Limit)
	}
	return nil
}
