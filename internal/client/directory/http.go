package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client is the HTTP implementation of Service against the staffdesk API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tokens:     tokens,
	}
}

// Authenticate implements Service.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}

	var result struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, false, &result); err != nil {
		return "", err
	}
	return result.Token, nil
}

// List implements Service.
func (c *Client) List(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	if err := c.do(ctx, http.MethodGet, "/employees", nil, true, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// Create implements Service.
func (c *Client) Create(ctx context.Context, data NewEmployee) (Employee, error) {
	var created Employee
	if err := c.do(ctx, http.MethodPost, "/employees", data, true, &created); err != nil {
		return Employee{}, err
	}
	return created, nil
}

// Update implements Service.
func (c *Client) Update(ctx context.Context, id string, data Employee) (Employee, error) {
	var updated Employee
	if err := c.do(ctx, http.MethodPut, "/employees/"+id, data, true, &updated); err != nil {
		return Employee{}, err
	}
	return updated, nil
}

// Delete implements Service.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/employees/"+id, nil, true, nil)
}

// do performs one request/response cycle. Protected calls are refused
// locally when no token is held, so an unauthenticated client never reaches
// the store.
func (c *Client) do(ctx context.Context, method, path string, body any, protected bool, out any) error {
	var token string
	if protected {
		var ok bool
		token, ok = c.tokens.Token()
		if !ok {
			return ErrUnauthenticated
		}
	}

	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return transportErrorf(err, "failed to encode request: %v", err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return transportErrorf(err, "failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if protected {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportErrorf(err, "request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.responseError(resp, path)
	}

	// 204 carries no body and must never be parsed as JSON.
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return transportErrorf(err, "failed to decode response: %v", err)
	}
	return nil
}

// responseError maps a non-2xx response to the client error taxonomy. The
// server's {message} body is preferred; an unparseable body falls back to a
// generic message built from the status line.
func (c *Client) responseError(resp *http.Response, path string) error {
	message := fmt.Sprintf("API Error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	var errBody struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Message != "" {
		message = errBody.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if path == "/auth/login" {
			return ErrInvalidCredentials
		}
		return ErrUnauthenticated
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &TransportError{Message: message}
	}
}
