package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrSessionExpired is returned when an authenticated call comes back 401.
// The stored token is already cleared by the time the caller sees it.
var ErrSessionExpired = errors.New("session expired")

// APIError is any non-2xx response other than the global 401 case.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

// Account is the wire shape of the authenticated user.
type Account struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	IsSuperuser bool   `json:"is_superuser"`
	IsActive    bool   `json:"is_active"`
	WarehouseID *int   `json:"warehouse_id,omitempty"`
}

func (a Account) IsAdmin() bool {
	return a.Role == "admin"
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
}

// Client talks to the warehouse API. Login uses a form-encoded body, every
// other endpoint JSON. A bearer header is attached whenever a token is
// stored.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  *TokenStore
}

func New(baseURL string, tokens *TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
}

// Login exchanges credentials for a token and persists it.
func (c *Client) Login(ctx context.Context, username, password string) (Account, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return Account{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return Account{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Account{}, apiErrorFrom(resp)
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return Account{}, err
	}
	if err := c.tokens.SetToken(lr.AccessToken); err != nil {
		return Account{}, err
	}

	return c.Me(ctx)
}

// Me returns the user behind the stored token.
func (c *Client) Me(ctx context.Context) (Account, error) {
	var account Account
	if err := c.Do(ctx, http.MethodGet, "/auth/me", nil, &account); err != nil {
		return Account{}, err
	}
	return account, nil
}

// Logout revokes the token server-side and always clears the local copy,
// even when the call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if clearErr := c.tokens.Clear(); clearErr != nil {
		return clearErr
	}
	if errors.Is(err, ErrSessionExpired) {
		return nil
	}
	return err
}

// Do performs a JSON request against path. A 401 clears the stored token and
// returns ErrSessionExpired; other non-2xx statuses become *APIError.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.tokens.Clear(); err != nil {
			return err
		}
		return ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFrom(resp)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func apiErrorFrom(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		apiErr.Detail = body.Detail
	} else {
		apiErr.Detail = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
