package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"evidence-service-server/database"
	"evidence-service-server/services"
)

// RegisterTagRoutes registers tag registry routes
func RegisterTagRoutes(router *gin.RouterGroup) {
	tagRoutes := router.Group("/tags")
	{
		tagRoutes.GET("", listTags)
		tagRoutes.POST("", createTag)
	}
}

// createTagRequest is the wire shape of a tag create call
type createTagRequest struct {
	TagName     string `json:"tag_name" binding:"required"`
	TagColor    string `json:"tag_color"`
	Description string `json:"description"`
	CreatedByID uint   `json:"created_by_id"`
}

// createTag creates a new tag; duplicate names conflict case-insensitively
func createTag(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid tag data",
		})
		return
	}

	registry := services.NewTagRegistry(database.DB)
	tag, err := registry.CreateTag(req.TagName, req.TagColor, req.Description, req.CreatedByID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    tag,
	})
}

// listTags returns all tags ordered by name
func listTags(c *gin.Context) {
	registry := services.NewTagRegistry(database.DB)
	tags, err := registry.ListTags()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tags,
	})
}

// assignTagsRequest carries the tag IDs to attach to one entry
type assignTagsRequest struct {
	TagIDs []uint `json:"tag_ids" binding:"required"`
}

// assignEvidenceTags attaches tags to a single entry, idempotently
func assignEvidenceTags(c *gin.Context) {
	entryID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req assignTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid tag assignment data",
		})
		return
	}

	registry := services.NewTagRegistry(database.DB)
	if err := registry.AssignTags(entryID, req.TagIDs); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Tags assigned",
	})
}

// removeEvidenceTag detaches one tag from one entry, idempotently
func removeEvidenceTag(c *gin.Context) {
	entryID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	tagID, err := parseIDParam(c, "tagId")
	if err != nil {
		respondError(c, err)
		return
	}

	registry := services.NewTagRegistry(database.DB)
	if err := registry.RemoveAssignment(entryID, tagID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Tag assignment removed",
	})
}
