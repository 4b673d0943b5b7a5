package httpx

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS allows browser clients on origins to call the API with a bearer
// token. An empty list allows any origin without credentials.
func CORS(origins []string) Middleware {
	allowCreds := true
	if len(origins) == 0 {
		origins = []string{"*"}
		allowCreds = false
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: allowCreds,
		MaxAge:           300,
	})
}

// SplitList parses a comma separated env value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
