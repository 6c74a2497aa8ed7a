package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/raushankrgupta/storefront-seeder/models"
)

// maxErrorBody caps how much of a response body is kept for diagnostics
const maxErrorBody = 4096

// APIError is returned when the storefront answers with an unexpected status
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// StatusCode extracts the HTTP status from err, or 0 if err did not come from a response
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// DecodeError is returned when a successful response body is not the expected JSON
type DecodeError struct {
	Method string
	Path   string
	Body   string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s %s response: %v: %s", e.Method, e.Path, e.Err, e.Body)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Client talks to the storefront REST API
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a Client for baseURL (e.g. https://shop.example.com/api)
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Login exchanges credentials for a bearer token. Only 200 counts as success.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	req := models.LoginRequest{Username: username, Password: password}

	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", req, http.StatusOK, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New("login response did not contain a token")
	}
	return resp.Token, nil
}

// Categories lists every category of the storefront
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", "", nil, 0, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateProduct uploads one product. Only 201 counts as success.
func (c *Client) CreateProduct(ctx context.Context, token string, product models.Product) error {
	return c.do(ctx, http.MethodPost, "/products", token, product, http.StatusCreated, nil)
}

// do sends one JSON request. want is the only accepted status; 0 accepts any 2xx.
// out may be nil when the body is not needed.
func (c *Client) do(ctx context.Context, method, path, token string, in interface{}, want int, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Wrapf(err, "encode %s %s", method, path)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return errors.Wrapf(err, "build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	ok := resp.StatusCode == want
	if want == 0 {
		ok = resp.StatusCode >= 200 && resp.StatusCode < 300
	}
	if !ok {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       truncate(b),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s %s response", method, path)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return &DecodeError{Method: method, Path: path, Body: truncate(b), Err: err}
	}
	return nil
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		b = b[:maxErrorBody]
	}
	return strings.TrimSpace(string(b))
}
