package routes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"evidence-service-server/config"
	"evidence-service-server/database"
	"evidence-service-server/middleware"
	"evidence-service-server/models"
	"evidence-service-server/services"
)

// RegisterEvidenceRoutes registers all evidence-related routes
func RegisterEvidenceRoutes(router *gin.RouterGroup) {
	evidenceRoutes := router.Group("/evidence")
	{
		// Search evidence entries with filters and pagination
		evidenceRoutes.GET("", searchEvidence)

		// Aggregate statistics over the same filter shape as search
		evidenceRoutes.GET("/stats", getEvidenceStats)

		// Get a single evidence entry
		evidenceRoutes.GET("/:id", getEvidenceEntry)

		// Apply one operation across a set of entries
		evidenceRoutes.POST("/bulk", bulkApplyEvidence)

		// Archive lifecycle
		evidenceRoutes.POST("/:id/archive", archiveEvidence)
		evidenceRoutes.POST("/:id/restore", restoreEvidence)

		// Manual tag edits on a single entry
		evidenceRoutes.POST("/:id/tags", assignEvidenceTags)
		evidenceRoutes.DELETE("/:id/tags/:tagId", removeEvidenceTag)
	}
}

// searchEvidence compiles the filter request and returns one page of matches
func searchEvidence(c *gin.Context) {
	filter, err := parseSearchFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	scope := middleware.GetActorScope(c)

	compiler := newFilterCompiler()
	query, err := compiler.Compile(filter, scope)
	if err != nil {
		respondError(c, err)
		return
	}

	store := services.NewEntryStore(database.DB)
	entries, total, err := store.Search(query)
	if err != nil {
		respondError(c, err)
		return
	}

	pages := (total + int64(query.Limit) - 1) / int64(query.Limit)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"results": entries,
			"pagination": gin.H{
				"total":    total,
				"page":     query.Page,
				"pages":    pages,
				"has_more": int64(query.Page*query.Limit) < total,
			},
		},
	})
}

// getEvidenceStats summarizes the filtered set without pagination
func getEvidenceStats(c *gin.Context) {
	filter, err := parseSearchFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	scope := middleware.GetActorScope(c)

	compiler := newFilterCompiler()
	query, err := compiler.Compile(filter, scope)
	if err != nil {
		respondError(c, err)
		return
	}

	aggregator := services.NewStatisticsAggregator(database.DB)
	stats, err := aggregator.Summarize(query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

// getEvidenceEntry returns a single entry with its tags
func getEvidenceEntry(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	store := services.NewEntryStore(database.DB)
	entry, err := store.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entry,
	})
}

// bulkOperationData carries the per-operation payload of a bulk request
type bulkOperationData struct {
	Reason       string `json:"reason"`
	NewDimension string `json:"new_dimension"`
	TagIDs       []uint `json:"tag_ids"`
}

// bulkRequest is the wire shape of a bulk mutation call
type bulkRequest struct {
	EntryIDs      []uint            `json:"entry_ids"`
	Operation     string            `json:"operation"`
	OperationData bulkOperationData `json:"operation_data"`
}

// bulkApplyEvidence applies one operation across the supplied entry IDs,
// reporting per-item outcomes
func bulkApplyEvidence(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid bulk request body",
		})
		return
	}

	op, err := buildBulkOperation(req)
	if err != nil {
		respondError(c, err)
		return
	}

	coordinator := services.NewBulkCoordinator(database.DB)
	result, err := coordinator.Apply(req.EntryIDs, op)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"success_count": result.SuccessCount,
			"failed_count":  result.FailedCount,
			"errors":        result.Errors,
		},
	})
}

// buildBulkOperation maps the wire operation name to its typed variant.
// An unknown name is a caller error surfaced before any entry is touched.
func buildBulkOperation(req bulkRequest) (models.BulkOperation, error) {
	switch req.Operation {
	case "archive":
		return models.ArchiveOp{Reason: req.OperationData.Reason}, nil
	case "delete":
		return models.DeleteOp{}, nil
	case "update_dimension":
		return models.UpdateDimensionOp{NewDimension: models.Dimension(req.OperationData.NewDimension)}, nil
	case "add_tags":
		return models.AddTagsOp{TagIDs: req.OperationData.TagIDs}, nil
	default:
		return nil, models.NewValidationError("unknown bulk operation %q", req.Operation)
	}
}

// archiveRequest carries the archive reason
type archiveRequest struct {
	Reason string `json:"reason"`
}

// archiveEvidence moves one entry to the archived state
func archiveEvidence(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req archiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid archive request body",
		})
		return
	}

	lifecycle := services.NewArchiveLifecycle(database.DB)
	if err := lifecycle.Archive(id, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Evidence entry archived",
	})
}

// restoreEvidence moves one archived entry back to active
func restoreEvidence(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	lifecycle := services.NewArchiveLifecycle(database.DB)
	if err := lifecycle.Restore(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Evidence entry restored",
	})
}

// newFilterCompiler builds a compiler from configured pagination bounds
func newFilterCompiler() *services.FilterCompiler {
	defaultLimit := services.DefaultPageSize
	maxLimit := services.MaxPageSize
	if config.AppConfig != nil {
		defaultLimit = config.AppConfig.Pagination.DefaultLimit
		maxLimit = config.AppConfig.Pagination.MaxLimit
	}
	return services.NewFilterCompiler(defaultLimit, maxLimit)
}

// parseSearchFilter reads the flat query parameters into a typed SearchFilter.
// Absent parameters stay nil; malformed ones fail with a ValidationError.
// The comma-joined tag list is split here, at the serialization edge only.
func parseSearchFilter(c *gin.Context) (models.SearchFilter, error) {
	var filter models.SearchFilter

	if v := c.Query("text"); v != "" {
		filter.Text = &v
	}
	if v := c.Query("employee_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, models.NewValidationError("invalid employee_id %q", v)
		}
		employeeID := uint(id)
		filter.EmployeeID = &employeeID
	}
	if v := c.Query("manager_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, models.NewValidationError("invalid manager_id %q", v)
		}
		managerID := uint(id)
		filter.ManagerID = &managerID
	}
	if v := c.Query("dimension"); v != "" {
		dimension := models.Dimension(v)
		filter.Dimension = &dimension
	}
	if v := c.Query("min_rating"); v != "" {
		rating, err := strconv.Atoi(v)
		if err != nil {
			return filter, models.NewValidationError("invalid min_rating %q", v)
		}
		filter.MinRating = &rating
	}
	if v := c.Query("max_rating"); v != "" {
		rating, err := strconv.Atoi(v)
		if err != nil {
			return filter, models.NewValidationError("invalid max_rating %q", v)
		}
		filter.MaxRating = &rating
	}
	if v := c.Query("start_date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, models.NewValidationError("invalid start_date %q, expected YYYY-MM-DD", v)
		}
		filter.StartDate = &date
	}
	if v := c.Query("end_date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, models.NewValidationError("invalid end_date %q, expected YYYY-MM-DD", v)
		}
		filter.EndDate = &date
	}
	if v := c.Query("content_length_min"); v != "" {
		length, err := strconv.Atoi(v)
		if err != nil {
			return filter, models.NewValidationError("invalid content_length_min %q", v)
		}
		filter.ContentLengthMin = &length
	}
	if v := c.Query("content_length_max"); v != "" {
		length, err := strconv.Atoi(v)
		if err != nil {
			return filter, models.NewValidationError("invalid content_length_max %q", v)
		}
		filter.ContentLengthMax = &length
	}
	if v := c.Query("has_attachments"); v != "" {
		has, err := strconv.ParseBool(v)
		if err != nil {
			return filter, models.NewValidationError("invalid has_attachments %q", v)
		}
		filter.HasAttachments = &has
	}
	if v := c.Query("approval_status"); v != "" {
		status := models.ApprovalStatus(v)
		filter.ApprovalStatus = &status
	}
	if v := c.Query("evidence_source"); v != "" {
		source := models.EvidenceSource(v)
		filter.Source = &source
	}
	if v := c.Query("tags"); v != "" {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 32)
			if err != nil {
				return filter, models.NewValidationError("invalid tag ID %q", part)
			}
			filter.TagIDs = append(filter.TagIDs, uint(id))
		}
	}
	if v := c.Query("include_archived"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return filter, models.NewValidationError("invalid include_archived %q", v)
		}
		filter.IncludeArchived = include
	}

	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return filter, models.NewValidationError("invalid page %q", v)
		}
		filter.Page = page
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return filter, models.NewValidationError("invalid limit %q", v)
		}
		filter.Limit = limit
	}

	return filter, nil
}

// parseIDParam reads a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, models.NewValidationError("invalid %s parameter", name)
	}
	return uint(id), nil
}

// respondError maps the engine's error taxonomy onto HTTP statuses
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var notFoundErr *models.NotFoundError
	var conflictErr *models.ConflictError
	var stateErr *models.InvalidStateError
	var storageErr *models.StorageError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": conflictErr.Message})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": stateErr.Message})
	case errors.As(err, &storageErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success":   false,
			"message":   "Storage temporarily unavailable",
			"retryable": true,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}
