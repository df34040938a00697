package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func TestSessionStartWithValidToken(t *testing.T) {
	c, store := newTestClient(t, authMux(t))
	store.SetToken("tok-1")

	s := NewSession(c)
	s.Start(context.Background())

	user := s.User()
	if user == nil {
		t.Fatal("expected resolved user")
	}
	if user.Username != "admin" {
		t.Errorf("unexpected user %+v", user)
	}
	if s.Loading() {
		t.Error("expected loading false after start")
	}
}

func TestSessionStartWithStaleTokenIsSilentLogout(t *testing.T) {
	c, store := newTestClient(t, authMux(t))
	store.SetToken("expired")

	s := NewSession(c)
	s.Start(context.Background())

	if s.User() != nil {
		t.Errorf("expected anonymous session, got %+v", s.User())
	}
	if store.Token() != "" {
		t.Errorf("expected cleared token, got %q", store.Token())
	}
}

func TestSessionStartWithoutTokenSkipsVerify(t *testing.T) {
	c, _ := newTestClient(t, authMux(t))

	s := NewSession(c)
	s.Start(context.Background())

	if s.User() != nil {
		t.Errorf("expected anonymous session, got %+v", s.User())
	}
}

func TestSessionLoginDistinguishesFailures(t *testing.T) {
	c, _ := newTestClient(t, authMux(t))
	s := NewSession(c)

	if err := s.Login(context.Background(), "admin", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("expected ErrBadCredentials, got %v", err)
	}

	// A dead server is a connection problem, not a credential problem.
	srv := httptest.NewServer(nil)
	srv.Close()
	dead := New(srv.URL, NewTokenStore(filepath.Join(t.TempDir(), "tokens.json")))
	if err := NewSession(dead).Login(context.Background(), "admin", "secret"); !errors.Is(err, ErrConnection) {
		t.Errorf("expected ErrConnection, got %v", err)
	}
}

func TestSessionLoginSuccess(t *testing.T) {
	c, store := newTestClient(t, authMux(t))
	s := NewSession(c)

	if err := s.Login(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.User() == nil || s.User().Username != "admin" {
		t.Errorf("unexpected user %+v", s.User())
	}
	if store.Token() != "tok-1" {
		t.Errorf("expected persisted token, got %q", store.Token())
	}
}

func TestSessionLogoutAlwaysClearsState(t *testing.T) {
	c, store := newTestClient(t, authMux(t))
	s := NewSession(c)

	if err := s.Login(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	s.Logout(context.Background())

	if s.User() != nil {
		t.Errorf("expected anonymous session after logout, got %+v", s.User())
	}
	if store.Token() != "" {
		t.Errorf("expected cleared token, got %q", store.Token())
	}
}
