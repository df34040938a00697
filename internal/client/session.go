package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// ErrBadCredentials surfaces a rejected username/password pair. Anything
// else that fails a login is reported as ErrConnection.
var (
	ErrBadCredentials = errors.New("incorrect username or password")
	ErrConnection     = errors.New("connection error")
)

// Session tracks the authenticated user. Loading is true while a verify,
// login, or logout call is in flight; protected content must not render
// until it drops back to false.
type Session struct {
	client *Client

	mu      sync.Mutex
	user    *Account
	loading bool
}

func NewSession(c *Client) *Session {
	return &Session{client: c}
}

func (s *Session) User() *Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Session) setUser(u *Account) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

// Start verifies a persisted token. Any failure is a silent logout: the
// token is dropped and the session stays anonymous, never an error.
func (s *Session) Start(ctx context.Context) {
	if s.client.tokens.Token() == "" {
		return
	}

	s.setLoading(true)
	defer s.setLoading(false)

	account, err := s.client.Me(ctx)
	if err != nil {
		s.client.tokens.Clear()
		s.setUser(nil)
		return
	}
	s.setUser(&account)
}

// Login resolves the user behind the credentials. A rejected pair maps to
// ErrBadCredentials; network failures and server errors to ErrConnection.
func (s *Session) Login(ctx context.Context, username, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	account, err := s.client.Login(ctx, username, password)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) &&
			(apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusUnauthorized) {
			return ErrBadCredentials
		}
		return ErrConnection
	}

	s.setUser(&account)
	return nil
}

// Logout clears local state no matter what the server says.
func (s *Session) Logout(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	s.client.Logout(ctx)
	s.setUser(nil)
}
