// Package client is a thin HTTP wrapper around the feedback API, used by the
// dashboard and any other Go consumer of the service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Feedback mirrors one feedback record on the wire.
type Feedback struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListParams are the list operation's filter and paging parameters.
// Zero values are omitted from the query string.
type ListParams struct {
	Search    string
	Category  string
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

// ListResult is the list response envelope.
type ListResult struct {
	Feedback    []Feedback `json:"feedback"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
	Total       int64      `json:"total"`
}

// CreateParams is a new submission. A nil Rating lets the server default it.
type CreateParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	Rating   *int   `json:"rating,omitempty"`
	Category string `json:"category,omitempty"`
}

// CreateResult is the create response envelope.
type CreateResult struct {
	Message  string   `json:"message"`
	Feedback Feedback `json:"feedback"`
}

// FieldError is one violated validation rule reported by the server.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a structured non-success response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []FieldError
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("api error %d: %s (%d field errors)", e.StatusCode, e.Message, len(e.Errors))
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client calls the feedback API. It holds only the base URL and transport.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the API at baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, http.DefaultClient)
}

// NewWithHTTPClient returns a client using a caller-supplied http.Client.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// List fetches one page of feedback matching the given filters.
func (c *Client) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := url.Values{}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Category != "" {
		query.Set("category", params.Category)
	}
	if params.StartDate != "" {
		query.Set("startDate", params.StartDate)
	}
	if params.EndDate != "" {
		query.Set("endDate", params.EndDate)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	endpoint := c.baseURL + "/api/feedback"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var result ListResult
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create submits new feedback and returns the created record.
func (c *Client) Create(ctx context.Context, params CreateParams) (*CreateResult, error) {
	var result CreateResult
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/feedback", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete permanently removes the record with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/api/feedback/"+url.PathEscape(id), nil, nil)
}

// do performs one request, decoding success payloads into out and non-success
// payloads into an *APIError carrying the server's structured message.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling feedback api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: "request failed"}

	var payload struct {
		Message string       `json:"message"`
		Error   string       `json:"error"`
		Errors  []FieldError `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		} else if payload.Error != "" {
			apiErr.Message = payload.Error
		} else if len(payload.Errors) > 0 {
			apiErr.Message = "validation failed"
		}
		apiErr.Errors = payload.Errors
	}
	return apiErr
}
