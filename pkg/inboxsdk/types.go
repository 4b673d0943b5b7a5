package inboxsdk

import (
	"time"

	"github.com/aussiebroadwan/whisper/pkg/jwtx"
)

// Response is the envelope every endpoint shares.
type Response struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Message sent successfully"`
}

// ============================================================================
// Accounts
// ============================================================================

type SignUpRequest struct {
	Username string `json:"username" example:"quietfox"`
	Email    string `json:"email" example:"fox@example.com"`
	Password string `json:"password" example:"hunter22"`
}

type VerifyRequest struct {
	Username string `json:"username" example:"quietfox"`
	Code     string `json:"code" example:"123456"`
}

type UsernameResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message" example:"Username is available"`
	Available bool   `json:"available"`
}

// ============================================================================
// Sessions
// ============================================================================

type LoginRequest struct {
	// Identifier is an e-mail address or a username.
	Identifier string `json:"identifier" example:"fox@example.com"`
	Password   string `json:"password" example:"hunter22"`
}

// User is the identity carried by a session. AcceptingMessages is the value
// at login time.
type User struct {
	ID                string `json:"id" example:"01JB3Q0ZPX6Q6YV9W8KQ3H2N5M"`
	Username          string `json:"username" example:"quietfox"`
	Verified          bool   `json:"verified"`
	AcceptingMessages bool   `json:"accepting_messages"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message" example:"Logged in"`
	Token   string `json:"token"`

	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int  `json:"expires_in" example:"86400"`
	User      User `json:"user"`
}

// ============================================================================
// Messages
// ============================================================================

type SubmitMessageRequest struct {
	Username string `json:"username" example:"quietfox"`
	Content  string `json:"content" example:"What are you reading lately?"`
}

type Message struct {
	ID        string    `json:"id" example:"01JB3Q2D1W3G8V5R0M7T9C4K6E"`
	Content   string    `json:"content" example:"What are you reading lately?"`
	CreatedAt time.Time `json:"created_at"`
}

// MessagesResponse lists an inbox newest first.
type MessagesResponse struct {
	Success  bool      `json:"success"`
	Messages []Message `json:"messages"`
}

// AcceptMessagesRequest sets the accept flag. AcceptMessages is required;
// the server rejects a body without it.
type AcceptMessagesRequest struct {
	AcceptMessages *bool `json:"accept_messages" binding:"required"`
}

type AcceptMessagesResponse struct {
	Success             bool   `json:"success"`
	Message             string `json:"message" example:"You are currently accepting messages."`
	IsAcceptingMessages bool   `json:"is_accepting_messages"`
}

// ============================================================================
// Suggestions
// ============================================================================

// SuggestionsResponse carries the raw generated text and its parsed
// questions. There may be fewer than three.
type SuggestionsResponse struct {
	Questions   string   `json:"questions" example:"Q1 || Q2 || Q3"`
	Suggestions []string `json:"suggestions"`
}

type SuggestionsErrorResponse struct {
	Error   string `json:"error" example:"Failed to generate suggestions"`
	Details string `json:"details"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz; only readyz sets Checks.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
	Cache    string `json:"cache,omitempty"`
}

// JWKSResponse holds the public keys that verify session tokens.
type JWKSResponse jwtx.JWKS
