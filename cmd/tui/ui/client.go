package ui

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
)

type QuickLink struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

type SearchEngine struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	IsActive    bool   `json:"is_active"`
	IsDefault   bool   `json:"is_default"`
}

// APIError is a non-2xx answer from the portal backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server answered %d", e.Status)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// Session talks to the portal HTTP API. An empty Token means anonymous.
type Session struct {
	BaseURL  string
	Token    string
	Username string
	HTTP     *http.Client
}

func NewSession(baseURL string) *Session {
	return &Session{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *Session) Anonymous() bool { return s.Token == "" }

func (s *Session) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Login exchanges credentials for a bearer token kept on the session.
func (s *Session) Login(ctx context.Context, username, password string) error {
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	err := s.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{"username": username, "password": password}, &tok)
	if err != nil {
		return err
	}
	s.Token = tok.AccessToken
	s.Username = username
	return nil
}

func (s *Session) Logout() {
	s.Token = ""
	s.Username = ""
}

func (s *Session) QuickLinks(ctx context.Context, category string) ([]QuickLink, error) {
	path := "/api/quick-links"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var links []QuickLink
	return links, s.do(ctx, http.MethodGet, path, nil, &links)
}

func (s *Session) SearchEngines(ctx context.Context) ([]SearchEngine, error) {
	var engines []SearchEngine
	return engines, s.do(ctx, http.MethodGet, "/api/search-engines?active_only=true", nil, &engines)
}

// Search returns the engine URL for query. Requires a logged-in session.
func (s *Session) Search(ctx context.Context, query, engine string) (string, error) {
	var res struct {
		SearchURL string `json:"search_url"`
	}
	err := s.do(ctx, http.MethodPost, "/api/search", map[string]string{"query": query, "search_engine": engine}, &res)
	return res.SearchURL, err
}

func (s *Session) SetDefaultEngine(ctx context.Context, id uint) error {
	return s.do(ctx, http.MethodPut, fmt.Sprintf("/api/search-engines/%d", id), map[string]bool{"is_default": true}, nil)
}
