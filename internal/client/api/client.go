// Package api implements the HTTP client for the taskboard server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/atinyakov/taskboard/internal/client/session"
	"github.com/atinyakov/taskboard/internal/models"
)

// Client calls the taskboard REST API, attaching the session's bearer
// token to authenticated requests.
type Client struct {
	http    *http.Client
	baseURL string
	session *session.Session
}

// New returns a Client for the server at baseURL using the given session.
func New(httpClient *http.Client, baseURL string, sess *session.Session) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, baseURL: baseURL, session: sess}
}

// apiError is the {"message": ...} body the server sends on failure.
type apiError struct {
	Message string `json:"message"`
}

// do performs one JSON round-trip. A non-nil body is encoded as the
// request body; a non-nil out receives the decoded response. Failure
// responses are returned as errors carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
			return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: %s", method, path, apiErr.Message)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Register creates a new account. It does not log in.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/register", body, nil)
}

// Login exchanges credentials for a session token, stores the token in
// the session, and returns the user record.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	if err := c.session.Set(resp.Token); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Me returns the user the held token resolves to.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Tasks lists the caller's tasks.
func (c *Client) Tasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask persists a new task and returns the stored record.
func (c *Client) CreateTask(ctx context.Context, draft models.TaskDraft) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", draft, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update and returns the updated record.
func (c *Client) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+id, patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task and returns the deleted record.
func (c *Client) DeleteTask(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
