package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/whisper/internal/inbox/service"
	"github.com/aussiebroadwan/whisper/internal/inbox/store"
	"github.com/aussiebroadwan/whisper/internal/inbox/suggest"
	"github.com/aussiebroadwan/whisper/pkg/httpx"
	"github.com/aussiebroadwan/whisper/pkg/jwtx"
	"github.com/aussiebroadwan/whisper/pkg/slogx"
	"github.com/go-chi/chi/v5/middleware"

	_ "github.com/aussiebroadwan/whisper/api/inbox" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	InboxService   *service.InboxService
	SessionService *service.SessionService
	AccountService *service.AccountService
	SuggestService *suggest.Service

	// CachePing reports on the suggestion cache in /readyz. Optional.
	CachePing func(r *http.Request) error
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	corsOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		middleware.Recoverer,
		httpx.CORS(corsOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerSessions()
	r.registerMessages()
	r.registerAcceptMessages()
	r.registerSuggestions()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Whisper Anonymous Inbox API
//	@version		0.1.0
//	@description	Anonymous messaging: owners sign up, share their username and receive messages from anyone.
//	@description
//	@description				Session tokens are EdDSA signed JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/whisper
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from POST /v1/sessions. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// owner wraps h for the signed-in owner endpoints.
func (r *Router) owner(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireVerified,
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAccounts() {
	h := &AccountHandler{AccountService: r.AccountService}

	// Sign-up and verification guard credentials and codes
	r.Mux.Handle("POST /v1/sign-up",
		httpx.Chain(http.HandlerFunc(h.HandleSignUp),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Checked as the user types
	r.Mux.Handle("GET /v1/usernames/{username}",
		httpx.Chain(http.HandlerFunc(h.HandleCheckUsername),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSessions() {
	h := &SessionHandler{SessionService: r.SessionService}

	r.Mux.Handle("POST /v1/sessions",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerMessages() {
	h := &MessagesHandler{InboxService: r.InboxService}

	// Anonymous senders, limited per IP
	r.Mux.Handle("POST /v1/messages",
		httpx.Chain(http.HandlerFunc(h.HandleSubmit),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/messages", r.owner(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/messages/{id}", r.owner(h.HandleDelete, httpx.ModerateLimit))
}

func (r *Router) registerAcceptMessages() {
	h := &AcceptMessagesHandler{InboxService: r.InboxService}

	r.Mux.Handle("POST /v1/accept-messages", r.owner(h.HandleSet, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/accept-messages", r.owner(h.HandleGet, httpx.LenientLimit))
}

func (r *Router) registerSuggestions() {
	h := &SuggestionsHandler{SuggestService: r.SuggestService}

	r.Mux.Handle("POST /v1/suggestions",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.CachePing),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
