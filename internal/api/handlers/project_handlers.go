package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"catalog/internal/api/middleware"
	"catalog/internal/models"
	"catalog/internal/store"
)

const listProjectsErrorMessage = "Server error while fetching projects."

// ListProjectsHandler handles GET /api/projects
func ListProjectsHandler(projectStore store.ProjectStore, maxLimit int, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		pagination := ParsePaginationParams(c, maxLimit)
		search := c.Query("search")

		projects, totalCount, err := projectStore.ListProjects(ctx, search, pagination)
		if err != nil {
			slog.Error("Failed to list projects",
				"error", err,
				"page", pagination.Page,
				"limit", pagination.Limit,
				"search", search,
				"request_id", c.GetString(middleware.RequestIDKey),
			)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Message: listProjectsErrorMessage})
			return
		}

		c.JSON(http.StatusOK, models.NewPaginatedList(projects, totalCount, pagination))
	}
}

// NotFoundHandler answers every unmatched route.
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Message: "Route not found"})
}
