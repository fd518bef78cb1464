package transport

import (
	"net/http"

	"naira-store/internal/middleware"
	"naira-store/internal/session"
)

// requireSession resolves the caller's in-memory session from the auth
// context. A valid token with no live session (for example after a server
// restart) re-creates one, hydrating from the backend, rather than failing.
// Returns false after writing the error response.
func requireSession(w http.ResponseWriter, r *http.Request, sessions *session.Manager) (*session.Session, bool) {
	userID, ok := middleware.GetUserUUID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	sess, ok := sessions.Get(userID)
	if !ok {
		sess = sessions.SignIn(r.Context(), userID)
	}
	return sess, true
}
