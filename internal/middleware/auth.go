package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"

	"eventbroker/internal/models"
)

type contextKey string

const (
	// UserContextKey is the request context key the current user is stored
	// under once LoadUser has resolved the session.
	UserContextKey contextKey = "user"

	// SessionName is the gorilla session cookie name.
	SessionName = "session"

	sessionTokenKey = "session_token"
)

// SessionValidator resolves a session token to its user. Implemented by
// services.AuthService.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware loads the current user from the session cookie and enforces
// authentication and admin checks on protected routes.
type AuthMiddleware struct {
	auth        SessionValidator
	store       sessions.Store
	adminDomain string
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(auth SessionValidator, store sessions.Store, adminDomain string) *AuthMiddleware {
	return &AuthMiddleware{
		auth:        auth,
		store:       store,
		adminDomain: adminDomain,
	}
}

// LoadUser resolves the session cookie to a user and stores it in the
// request context. Requests without a valid session continue anonymously;
// stale cookies are cleared on the way through.
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := session.Values[sessionTokenKey].(string)
		if !ok || token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.auth.ValidateSession(r.Context(), token)
		if err != nil {
			// Invalid or expired session, clear the cookie.
			session.Values[sessionTokenKey] = nil
			session.Options.MaxAge = -1
			_ = session.Save(r, w)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests that carry no authenticated user.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose user does not carry the admin email
// domain. It implies RequireAuth.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !user.IsAdmin(m.adminDomain) {
			writeAuthError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SaveSessionToken writes the session token into the client's cookie.
func (m *AuthMiddleware) SaveSessionToken(w http.ResponseWriter, r *http.Request, token string) error {
	session, err := m.store.Get(r, SessionName)
	if err != nil {
		// A tampered cookie still decodes to a fresh session.
		session, _ = m.store.New(r, SessionName)
	}
	session.Values[sessionTokenKey] = token
	return session.Save(r, w)
}

// ClearSessionToken removes the session cookie and returns the token it
// held, if any, so the server-side session can be deleted too.
func (m *AuthMiddleware) ClearSessionToken(w http.ResponseWriter, r *http.Request) (string, error) {
	session, err := m.store.Get(r, SessionName)
	if err != nil {
		return "", nil
	}
	token, _ := session.Values[sessionTokenKey].(string)
	session.Values[sessionTokenKey] = nil
	session.Options.MaxAge = -1
	return token, session.Save(r, w)
}

// GetUserFromContext retrieves the user from the request context, or nil
// when the request is anonymous.
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
