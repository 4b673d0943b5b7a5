package inboxsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient talks to the public endpoints and opens Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SignUp registers an account. The server mails a verification code.
func (c *SDKClient) SignUp(ctx context.Context, req SignUpRequest) (*Response, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/sign-up", "", req)
	if err != nil {
		return nil, err
	}
	var out Response
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckUsername reports whether username is free.
func (c *SDKClient) CheckUsername(ctx context.Context, username string) (bool, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/usernames/"+url.PathEscape(username), "", nil)
	if err != nil {
		return false, err
	}
	var out UsernameResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return false, err
	}
	return out.Available, nil
}

func (c *SDKClient) Verify(ctx context.Context, username, code string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/verify", "", VerifyRequest{Username: username, Code: code})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// Login signs in with an e-mail address or username.
func (c *SDKClient) Login(ctx context.Context, identifier, password string) (*Session, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/sessions", "", LoginRequest{
		Identifier: identifier,
		Password:   password,
	})
	if err != nil {
		return nil, err
	}
	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return c.NewSessionFromToken(out.Token, out.ExpiresIn, out.User), nil
}

// NewSessionFromToken wraps a token obtained elsewhere.
func (c *SDKClient) NewSessionFromToken(token string, expiresIn int, user User) *Session {
	return &Session{
		client:    c,
		token:     token,
		expiresAt: time.Now().Add(time.Duration(expiresIn) * time.Second),
		user:      user,
	}
}

// SubmitMessage leaves an anonymous message for username.
func (c *SDKClient) SubmitMessage(ctx context.Context, username, content string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/messages", "", SubmitMessageRequest{
		Username: username,
		Content:  content,
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusCreated)
}

func (c *SDKClient) FetchSuggestions(ctx context.Context) (*SuggestionsResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/suggestions", "", nil)
	if err != nil {
		return nil, err
	}
	var out SuggestionsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJWKS fetches the public keys that sign session tokens.
func (c *SDKClient) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/.well-known/jwks.json", "", nil)
	if err != nil {
		return nil, err
	}
	var out JWKSResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
