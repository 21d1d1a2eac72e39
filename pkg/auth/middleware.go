package auth

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/contracthub/pkg/httpx"
	"github.com/ghuser/contracthub/pkg/logger"
)

const (
	sessionName         = "contracthub_session"
	sessionAccountIDKey = "account_id"
	sessionEmailKey     = "email"
)

// RequireAuth is a chi middleware that resolves the signed-in Actor from the
// session cookie and injects it into the request context. Missing or invalid
// sessions get 401.
//
// After this middleware, handlers can safely call auth.ActorFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			email, _ := session.Values[sessionEmailKey].(string)
			idStr, _ := session.Values[sessionAccountIDKey].(string)
			if email == "" || idStr == "" {
				log.WarnContext(r.Context(), "session missing actor")
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			accountID, err := uuid.Parse(idStr)
			if err != nil {
				log.WarnContext(r.Context(), "invalid account_id in session", "account_id", idStr, "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid session data"})
				return
			}

			ctx := WithActor(r.Context(), Actor{AccountID: accountID, Email: email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SignIn stores actor in a fresh session and writes the session cookie.
func SignIn(w http.ResponseWriter, r *http.Request, store sessions.Store, actor Actor) error {
	// A stale or tampered cookie still yields a usable new session.
	session, err := store.Get(r, sessionName)
	if session == nil {
		return fmt.Errorf("auth: new session: %w", err)
	}
	session.Values[sessionAccountIDKey] = actor.AccountID.String()
	session.Values[sessionEmailKey] = actor.Email
	return session.Save(r, w)
}
