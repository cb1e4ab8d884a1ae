package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog/internal/models"
)

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ParsePaginationParams extracts page and limit from query parameters.
// Missing, malformed or non-positive values fall back to page 1, limit 10;
// limit is capped at maxLimit.
func ParsePaginationParams(c *gin.Context, maxLimit int) models.PaginationParams {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "10")

	page, err := strconv.Atoi(strings.TrimSpace(pageStr))
	if err != nil {
		page = 0
	}

	limit, err := strconv.Atoi(strings.TrimSpace(limitStr))
	if err != nil {
		limit = 0
	}

	return models.PaginationParams{
		Page:  page,
		Limit: limit,
	}.Normalize(maxLimit)
}
