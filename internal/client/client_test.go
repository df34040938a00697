package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *TokenStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := NewTokenStore(filepath.Join(t.TempDir(), "tokens.json"))
	return New(srv.URL, store), store
}

func authMux(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.PostFormValue("username") != "admin" || r.PostFormValue("password") != "secret" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "tok-1", "token_type": "bearer", "role": "admin",
		})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(Account{ID: 1, Username: "admin", Role: "admin", IsSuperuser: true, IsActive: true})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func TestClientLoginPersistsTokenAndResolvesUser(t *testing.T) {
	c, store := newTestClient(t, authMux(t))

	account, err := c.Login(context.Background(), "admin", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if account.Username != "admin" || !account.IsAdmin() {
		t.Errorf("unexpected account %+v", account)
	}
	if store.Token() != "tok-1" {
		t.Errorf("expected persisted token, got %q", store.Token())
	}
}

func TestClientLoginBadCredentials(t *testing.T) {
	c, store := newTestClient(t, authMux(t))

	_, err := c.Login(context.Background(), "admin", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", apiErr.StatusCode)
	}
	if apiErr.Detail != "Incorrect username or password" {
		t.Errorf("unexpected detail %q", apiErr.Detail)
	}
	if store.Token() != "" {
		t.Errorf("expected no token persisted, got %q", store.Token())
	}
}

func TestClientAttachesBearerHeader(t *testing.T) {
	var seen string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	c, store := newTestClient(t, mux)
	store.SetToken("tok-9")

	if err := c.Do(context.Background(), http.MethodGet, "/products", nil, nil); err != nil {
		t.Fatalf("do: %v", err)
	}
	if seen != "Bearer tok-9" {
		t.Errorf("expected bearer header, got %q", seen)
	}
}

func TestClientUnauthorizedClearsTokenOnce(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	c, store := newTestClient(t, mux)
	store.SetToken("stale")

	err := c.Do(context.Background(), http.MethodGet, "/orders", nil, nil)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if store.Token() != "" {
		t.Errorf("expected cleared token, got %q", store.Token())
	}

	// A second 401 finds nothing to clear and still maps cleanly.
	err = c.Do(context.Background(), http.MethodGet, "/orders", nil, nil)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired on repeat, got %v", err)
	}
}

func TestClientMapsErrorDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /warehouses/9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Warehouse not found"})
	})

	c, _ := newTestClient(t, mux)

	err := c.Do(context.Background(), http.MethodGet, "/warehouses/9", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Detail != "Warehouse not found" {
		t.Errorf("unexpected error %+v", apiErr)
	}
}

func TestClientLogoutClearsTokenDespiteServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "redis down"})
	})

	c, store := newTestClient(t, mux)
	store.SetToken("tok-1")

	err := c.Logout(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if store.Token() != "" {
		t.Errorf("expected cleared token, got %q", store.Token())
	}
}
