// Package imagekit wraps the ImageKit file-listing API for the dev proxy,
// keeping the private key server-side.
package imagekit

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the ImageKit management API root.
	DefaultBaseURL = "https://api.imagekit.io"

	// MaxLimit caps a single listing for performance.
	MaxLimit = 1000

	// DefaultLimit is used when the caller doesn't ask for one.
	DefaultLimit = 200

	userAgent = "Mozilla/5.0 (compatible; StLouisDemoJHS/1.0)"
)

// UpstreamError carries the closest matching HTTP status for an ImageKit
// failure plus a short detail string for the response body.
type UpstreamError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("imagekit upstream error (status %v): %v", e.StatusCode, e.Message)
}

// Client lists files from ImageKit using basic auth with the private key as
// username and an empty password.
type Client struct {
	BaseURL    string
	PrivateKey string

	hc *http.Client
}

func NewClient(privateKey string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		PrivateKey: privateKey,
		hc: &http.Client{
			Timeout: time.Second * 10,
		},
	}
}

// ListFiles fetches the file listing for a folder, newest first. The raw
// JSON array is returned untouched for passthrough to the frontend.
func (c *Client) ListFiles(ctx context.Context, folder string, limit int, skip int) (json.RawMessage, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if skip < 0 {
		skip = 0
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/files", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build imagekit request: %v", err.Error())
	}
	q := req.URL.Query()
	q.Set("path", folder)
	q.Set("sort", "DESC_CREATED")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))
	req.URL.RawQuery = q.Encode()
	req.SetBasicAuth(c.PrivateKey, "")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &UpstreamError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Failed to fetch images from ImageKit",
			Details:    err.Error(),
		}
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Failed to fetch images from ImageKit",
			Details:    err.Error(),
		}
	}

	if resp.StatusCode == http.StatusOK {
		if len(body) == 0 {
			return json.RawMessage("[]"), nil
		}
		return json.RawMessage(body), nil
	}

	detail := upstreamMessage(body)
	log.Printf("imagekit returned status %v: %v", resp.StatusCode, detail)
	switch resp.StatusCode {
	case http.StatusForbidden:
		return nil, &UpstreamError{
			StatusCode: http.StatusForbidden,
			Message:    "Access denied. Please check ImageKit configuration.",
			Details:    detail,
		}
	case http.StatusNotFound:
		return nil, &UpstreamError{
			StatusCode: http.StatusNotFound,
			Message:    "Folder not found",
			Details:    "The specified folder does not exist in ImageKit",
		}
	}
	return nil, &UpstreamError{
		StatusCode: http.StatusInternalServerError,
		Message:    "Failed to fetch images from ImageKit",
		Details:    detail,
	}
}

func upstreamMessage(body []byte) string {
	parsed := struct {
		Message string `json:"message"`
	}{}
	err := json.Unmarshal(body, &parsed)
	if err != nil || parsed.Message == "" {
		return "Authentication failed"
	}
	return parsed.Message
}
