package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"evidence-service-server/models"
)

const scopeContextKey = "actor_scope"

// ScopeMiddleware reads the pre-authorized actor scope the upstream auth
// gateway attaches to each request. The engine only applies this scope to
// queries; it never computes permissions itself. Absent headers mean an
// unrestricted scope.
//
// Headers: X-Scope-Employee-Ids (comma-separated IDs), X-Scope-Manager-Id.
func ScopeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var scope models.ActorScope

		if raw := c.GetHeader("X-Scope-Employee-Ids"); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				id, err := strconv.ParseUint(part, 10, 32)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{
						"success": false,
						"message": "Invalid X-Scope-Employee-Ids header",
					})
					c.Abort()
					return
				}
				scope.EmployeeIDs = append(scope.EmployeeIDs, uint(id))
			}
		}

		if raw := c.GetHeader("X-Scope-Manager-Id"); raw != "" {
			id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"message": "Invalid X-Scope-Manager-Id header",
				})
				c.Abort()
				return
			}
			managerID := uint(id)
			scope.ManagerID = &managerID
		}

		c.Set(scopeContextKey, scope)
		c.Next()
	}
}

// GetActorScope returns the scope attached by ScopeMiddleware, or an
// unrestricted scope if none was set
func GetActorScope(c *gin.Context) models.ActorScope {
	if v, ok := c.Get(scopeContextKey); ok {
		if scope, ok := v.(models.ActorScope); ok {
			return scope
		}
	}
	return models.ActorScope{}
}
