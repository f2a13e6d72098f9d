// Package remote implements a client for Parse-compatible REST backends,
// used to sync set records with a hosted deployment.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lynx-zenchar/builtbuff/internal/models"
)

// fetchLimit caps a single class query. The hosted backend defaults to 100
// rows, so every list request sets this explicitly.
const fetchLimit = 1000

// Client talks to a Parse-compatible REST API. All requests carry the
// application id and REST key headers the backend requires.
type Client struct {
	baseURL    string
	appID      string
	restKey    string
	httpClient *http.Client
}

// NewClient creates a Client targeting the given base URL.
func NewClient(baseURL, appID, restKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		appID:      appID,
		restKey:    restKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, payload any) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("remote: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("remote: create request: %w", err)
	}
	req.Header.Set("X-Parse-Application-Id", c.appID)
	req.Header.Set("X-Parse-REST-API-Key", c.restKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("remote: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("remote: %s %s returned %d: %s", method, path, resp.StatusCode, respBody)
	}

	return respBody, nil
}

// FetchSetRecords returns all set records belonging to userID. The backend
// query is not scoped server-side; the full class is fetched and filtered
// here, which keeps the request shape identical across deployments.
func (c *Client) FetchSetRecords(ctx context.Context, userID string) ([]models.SetRecord, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprint(fetchLimit))

	body, err := c.do(ctx, http.MethodGet, "/classes/TrackedWorkouts", params, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Results []models.SetRecord `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("remote: decode set records: %w", err)
	}

	records := make([]models.SetRecord, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.UserID == userID {
			records = append(records, r)
		}
	}
	return records, nil
}

// QuerySetRecords returns all set records belonging to userID. Same data as
// FetchSetRecords under the record-source method name, so the MCP binary can
// run against the hosted backend instead of Postgres.
func (c *Client) QuerySetRecords(ctx context.Context, userID string) ([]models.SetRecord, error) {
	return c.FetchSetRecords(ctx, userID)
}

// CreateSetRecord stores a new record and returns the id assigned by the
// backend.
func (c *Client) CreateSetRecord(ctx context.Context, record models.SetRecord) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/classes/TrackedWorkouts", nil, record)
	if err != nil {
		return "", err
	}

	var resp struct {
		ObjectID string `json:"objectId"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("remote: decode create response: %w", err)
	}
	return resp.ObjectID, nil
}

// UpdateSetRecord overwrites the fields of an existing record.
func (c *Client) UpdateSetRecord(ctx context.Context, objectID string, record models.SetRecord) error {
	_, err := c.do(ctx, http.MethodPut, "/classes/TrackedWorkouts/"+objectID, nil, record)
	return err
}

// DeleteSetRecord removes a record.
func (c *Client) DeleteSetRecord(ctx context.Context, objectID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/classes/TrackedWorkouts/"+objectID, nil, nil)
	return err
}

// FetchTemplates returns workout templates visible to userID, meaning the
// user's own plus global ones.
func (c *Client) FetchTemplates(ctx context.Context, userID string) ([]models.Template, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprint(fetchLimit))

	body, err := c.do(ctx, http.MethodGet, "/classes/WorkoutTemplates", params, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Results []models.Template `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("remote: decode templates: %w", err)
	}

	templates := make([]models.Template, 0, len(resp.Results))
	for _, t := range resp.Results {
		if t.IsGlobal || t.UserID == userID {
			templates = append(templates, t)
		}
	}
	return templates, nil
}
