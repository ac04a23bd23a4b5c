package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`
}

type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Session is the login/signup response.
type Session struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// Client talks to one quizhub server. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.RWMutex
	session *Session
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Session returns the current session, or nil before a successful login.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Logout forgets the token.
func (c *Client) Logout() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

func (c *Client) Signup(ctx context.Context, username, email, password string) (*Session, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.authenticate(ctx, "/api/user/signup", body)
}

func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	body := map[string]string{"username": username, "password": password}
	return c.authenticate(ctx, "/api/user/login", body)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*Session, error) {
	var sess Session
	if err := c.do(ctx, http.MethodPost, path, body, false, &sess); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.session = &sess
	c.mu.Unlock()
	return &sess, nil
}

// ListQuizzes returns every quiz on the server.
func (c *Client) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	var resp struct {
		Quizzes []Quiz `json:"quizzes"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/quiz", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Quizzes, nil
}

// ListMyQuizzes returns the quizzes on the logged-in user's list.
func (c *Client) ListMyQuizzes(ctx context.Context) ([]Quiz, error) {
	var resp struct {
		Quizzes []Quiz `json:"quizzes"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/quiz/user", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Quizzes, nil
}

func (c *Client) GetQuiz(ctx context.Context, id string) (*Quiz, error) {
	var resp struct {
		Quiz Quiz `json:"quiz"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/quiz/"+url.PathEscape(id), nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp.Quiz, nil
}

func (c *Client) DeleteQuiz(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/quiz/"+url.PathEscape(id), nil, true, nil)
}

// do sends one JSON request and decodes a 2xx body into out. Non-2xx
// responses are returned as *Error.
func (c *Client) do(ctx context.Context, method, path string, in any, withAuth bool, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		sess := c.Session()
		if sess == nil {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
