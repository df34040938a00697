package client

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

const tokenKey = "access_token"

// TokenStore persists a single access token in a JSON file and serializes
// access across goroutines.
type TokenStore struct {
	path string

	mu     sync.Mutex
	tokens map[string]string
	loaded bool
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path, tokens: map[string]string{}}
}

func (s *TokenStore) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	json.Unmarshal(data, &s.tokens)
	if s.tokens == nil {
		s.tokens = map[string]string{}
	}
}

func (s *TokenStore) save() error {
	data, err := json.MarshalIndent(s.tokens, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Token returns the stored access token, or "" when logged out.
func (s *TokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.tokens[tokenKey]
}

func (s *TokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	s.tokens[tokenKey] = token
	return s.save()
}

// Clear removes the token. Clearing an empty store is a no-op so a 401
// handled on several in-flight calls only rewrites the file once.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	if _, ok := s.tokens[tokenKey]; !ok {
		return nil
	}
	delete(s.tokens, tokenKey)
	if len(s.tokens) == 0 {
		err := os.Remove(s.path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	return s.save()
}
