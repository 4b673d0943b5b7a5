package inboxsdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// ErrSessionExpired is returned locally once the token lifetime has passed.
var ErrSessionExpired = errors.New("inboxsdk: session expired, log in again")

// Session performs owner operations with a bearer token.
type Session struct {
	client *SDKClient

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	user      User
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// User returns the identity from login. AcceptingMessages is refreshed by
// GetAcceptMessages and SetAcceptMessages.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) validToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !time.Now().Before(s.expiresAt) {
		return "", ErrSessionExpired
	}
	return s.token, nil
}

func (s *Session) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	token, err := s.validToken()
	if err != nil {
		return nil, err
	}
	return s.client.doJSON(ctx, method, path, token, body)
}

// ListMessages returns the inbox newest first.
func (s *Session) ListMessages(ctx context.Context) ([]Message, error) {
	resp, err := s.do(ctx, http.MethodGet, "/v1/messages", nil)
	if err != nil {
		return nil, err
	}
	var out MessagesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// DeleteMessage reports false when the message did not exist.
func (s *Session) DeleteMessage(ctx context.Context, id string) (bool, error) {
	resp, err := s.do(ctx, http.MethodDelete, "/v1/messages/"+url.PathEscape(id), nil)
	if err != nil {
		return false, err
	}
	err = decodeJSON(resp, nil, http.StatusOK)
	switch {
	case err == nil:
		return true, nil
	case IsStatus(err, http.StatusNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *Session) SetAcceptMessages(ctx context.Context, accept bool) error {
	resp, err := s.do(ctx, http.MethodPost, "/v1/accept-messages", AcceptMessagesRequest{AcceptMessages: &accept})
	if err != nil {
		return err
	}
	if err := decodeJSON(resp, nil, http.StatusOK); err != nil {
		return err
	}
	s.setAccepting(accept)
	return nil
}

// GetAcceptMessages reads the stored flag, not the login snapshot.
func (s *Session) GetAcceptMessages(ctx context.Context) (bool, error) {
	resp, err := s.do(ctx, http.MethodGet, "/v1/accept-messages", nil)
	if err != nil {
		return false, err
	}
	var out AcceptMessagesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return false, err
	}
	s.setAccepting(out.IsAcceptingMessages)
	return out.IsAcceptingMessages, nil
}

func (s *Session) setAccepting(v bool) {
	s.mu.Lock()
	s.user.AcceptingMessages = v
	s.mu.Unlock()
}
