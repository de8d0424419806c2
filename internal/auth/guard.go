package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/midgard/midgard-core/internal/domain"
)

const (
	msgTokenMissing = "Token não informado"
	msgTokenInvalid = "Token inválido ou expirado"
)

// TokenCookieName is the cookie consulted when no Authorization header is set.
const TokenCookieName = "token"

type contextKey string

const principalContextKey contextKey = "midgardPrincipal"

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID string
	Email  string
}

// Extractor pulls a bearer credential from a request. Empty means absent.
type Extractor func(r *http.Request) string

// BearerHeader extracts the credential from the Authorization header.
func BearerHeader(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// Cookie returns an Extractor reading the named cookie.
func Cookie(name string) Extractor {
	return func(r *http.Request) string {
		cookie, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return cookie.Value
	}
}

// Authenticate turns an inbound request into an authenticated principal.
// Extractors are tried in order; a missing credential and a failed
// verification both reject with an unauthorized domain error.
func Authenticate(r *http.Request, tokens TokenService, extractors ...Extractor) (Principal, error) {
	var credential string
	for _, extract := range extractors {
		if credential = extract(r); credential != "" {
			break
		}
	}
	if credential == "" {
		return Principal{}, domain.Unauthorized(msgTokenMissing)
	}

	payload, err := tokens.Verify(credential)
	if err != nil {
		return Principal{}, domain.Unauthorized(msgTokenInvalid)
	}

	return Principal{UserID: payload.Sub, Email: payload.Email}, nil
}

// Guard gates a route group behind bearer authentication. The downstream
// handler is never invoked when authentication fails.
func Guard(tokens TokenService, extractors ...Extractor) gin.HandlerFunc {
	if len(extractors) == 0 {
		extractors = []Extractor{BearerHeader, Cookie(TokenCookieName)}
	}
	return func(c *gin.Context) {
		principal, err := Authenticate(c.Request, tokens, extractors...)
		if err != nil {
			WriteError(c, err)
			c.Abort()
			return
		}

		c.Set(string(principalContextKey), principal)
		c.Next()
	}
}

// CurrentPrincipal extracts the authenticated principal from the context.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	value, exists := c.Get(string(principalContextKey))
	if !exists {
		return Principal{}, false
	}
	principal, ok := value.(Principal)
	return principal, ok
}
