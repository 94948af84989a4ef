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

	"taskpad/internal/log"
	"taskpad/internal/tasks/data"
	"taskpad/internal/tasks/service"
)

// ResourcePath is the tasks resource on the API server.
const ResourcePath = "/tasks"

var _ service.TaskService = (*Client)(nil)

// ClientConfig is the configuration for the remote task client.
type ClientConfig struct {
	// BaseURL is the API server address, e.g. http://127.0.0.1:5000.
	BaseURL string
	// Timeout bounds every request. Zero means no timeout.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base url is required")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base url %q must use http or https", c.BaseURL)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout can't be negative")
	}

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Client talks to the tasks resource of the API server.
type Client struct {
	endpoint string
	http     *http.Client
	logger   log.Logger
}

// NewClient creates a new remote task client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		endpoint: strings.TrimSuffix(cfg.BaseURL, "/") + ResourcePath,
		http:     cfg.HTTPClient,
		logger:   cfg.Logger.WithValues(log.Kv{"svc": "remote.Client"}),
	}, nil
}

// Endpoint returns the full URL of the tasks resource.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// List returns every task in server order.
func (c *Client) List(ctx context.Context) ([]data.Task, error) {
	var tasks []data.Task
	if err := c.do(ctx, http.MethodGet, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []data.Task{}
	}
	return tasks, nil
}

// Create creates a task and returns it with its server assigned id.
func (c *Client) Create(ctx context.Context, task data.NewTask) (data.Task, error) {
	var created data.Task
	if err := c.do(ctx, http.MethodPost, task, &created); err != nil {
		return data.Task{}, err
	}
	return created, nil
}

// Update replaces the title and description of an existing task.
func (c *Client) Update(ctx context.Context, task data.Task) (data.Task, error) {
	if task.ID.IsZero() {
		return data.Task{}, fmt.Errorf("task id is required: %w", data.ErrNotValid)
	}

	var updated data.Task
	if err := c.do(ctx, http.MethodPut, task, &updated); err != nil {
		return data.Task{}, err
	}
	return updated, nil
}

// Delete deletes a task. The id travels in the request body, not in the path.
func (c *Client) Delete(ctx context.Context, id data.ID) error {
	if id.IsZero() {
		return fmt.Errorf("task id is required: %w", data.ErrNotValid)
	}

	return c.do(ctx, http.MethodDelete, data.DeletePayload(id), nil)
}

func (c *Client) do(ctx context.Context, method string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not encode %s body: %w", method, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint, reader)
	if err != nil {
		return fmt.Errorf("could not create %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := c.logger.WithCtxValues(ctx)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, c.endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read %s response: %w", method, err)
	}

	logger.Debugf("%s %s -> %d (%s)", method, c.endpoint, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(method, resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("could not decode %s response: %w", method, err)
	}
	return nil
}
