// Package client is the Go client for the LearnHub lesson-ordering API.
// It wraps the HTTP surface with typed calls and keeps the caller's
// authenticated session in an injected SessionStore rather than any
// package-level state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"learnhub-backend/models"

	"github.com/google/uuid"
)

// APIError is the server-reported error body, surfaced unchanged as the
// failure value for any non-success response.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// Client communicates with the LearnHub API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    SessionStore
}

// New creates a new Client. The session store carries the bearer token and
// user profile between calls.
func New(baseURL string, session SessionStore) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		session: session,
	}
}

// SignupRequest is the payload for Signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest is the payload for Login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by Signup and Login.
type AuthResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// OrderItem is a single lesson reference with a quantity.
type OrderItem struct {
	LessonID uuid.UUID `json:"lessonId"`
	Quantity int       `json:"quantity"`
}

// OrderRequest is the payload sent to POST /orders.
type OrderRequest struct {
	Name  string      `json:"name"`
	Phone string      `json:"phone"`
	Items []OrderItem `json:"items"`
}

// ListLessons fetches the full lesson catalog.
func (c *Client) ListLessons(ctx context.Context) ([]models.Lesson, error) {
	var lessons []models.Lesson
	if err := c.do(ctx, http.MethodGet, "/lessons", nil, false, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// GetLesson fetches a single lesson by ID.
func (c *Client) GetLesson(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := c.do(ctx, http.MethodGet, "/lessons/"+id.String(), nil, false, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// SearchLessons fetches lessons whose subject or location contains query.
func (c *Client) SearchLessons(ctx context.Context, query string) ([]models.Lesson, error) {
	var lessons []models.Lesson
	path := "/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, false, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// CreateOrder submits an order with the stored bearer token attached.
func (c *Client) CreateOrder(ctx context.Context, order OrderRequest) (*models.Order, error) {
	var created models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", order, true, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListOrders fetches the caller's own orders.
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, true, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Signup registers a new account and stores the returned token and profile
// in the session.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", req, false, &resp); err != nil {
		return nil, err
	}
	c.session.SetSession(resp.Token, resp.User)
	return &resp, nil
}

// Login authenticates and stores the returned token and profile in the session.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, false, &resp); err != nil {
		return nil, err
	}
	c.session.SetSession(resp.Token, resp.User)
	return &resp, nil
}

// do executes a request and decodes the response into out. Non-success
// responses are decoded into *APIError and returned as the error value.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, authed bool, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token, _ := c.session.Session()
		if token == "" {
			return &APIError{Code: http.StatusUnauthorized, Message: "Not logged in"}
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err == nil && apiErr.Code == 0 {
			apiErr.Code = resp.StatusCode
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
