// Package client calls the catalog HTTP API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog/internal/models"
)

const fallbackErrorMessage = "Failed to fetch projects"

// APIError is a non-2xx reply. Message is the server's message, or a generic
// one when the body carried none.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListProjects fetches one page of GET /api/projects.
func (c *Client) ListProjects(ctx context.Context, page, limit int, search string) (models.PaginatedList[models.Project], error) {
	var out models.PaginatedList[models.Project]

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("search", search)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/projects?"+params.Encode(), nil)
	if err != nil {
		return out, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return out, fmt.Errorf("%s: %w", fallbackErrorMessage, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return out, fmt.Errorf("%s: %w", fallbackErrorMessage, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: fallbackErrorMessage}
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &msg) == nil && msg.Message != "" {
			apiErr.Message = msg.Message
		}
		return out, apiErr
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("failed to decode projects: %w", err)
	}
	if out.Data == nil {
		out.Data = []models.Project{}
	}
	return out, nil
}
