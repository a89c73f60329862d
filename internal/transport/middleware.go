package transport

import (
	"context"
	"encoding/json"
	"net/http"

	"starboard/internal/auth"
	"starboard/pkg/gameerr"
)

type ctxKey int

const (
	ctxUserID ctxKey = iota
	ctxDisplayName
)

// authHeader is the token header browsers can set on fetch/XHR requests.
// EventSource cannot set headers, so the SSE route instead carries the
// token as the last path segment.
const authHeader = "X-User-Token"

// requireAuth resolves X-User-Token into a user identity and stores it
// on the request context. Unlike the reference server's optional-auth
// filters, every route this wraps genuinely requires a caller.
func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(authHeader)
		if token == "" {
			writeJSONError(w, http.StatusUnauthorized, "missing "+authHeader)
			return
		}
		userID, displayName, err := auth.VerifyToken(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, userID)
		ctx = context.WithValue(ctx, ctxDisplayName, displayName)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromContext(r *http.Request) (uint64, string, bool) {
	userID, ok := r.Context().Value(ctxUserID).(uint64)
	if !ok {
		return 0, "", false
	}
	displayName, _ := r.Context().Value(ctxDisplayName).(string)
	return userID, displayName, true
}

// writeGameError maps a gameerr.Error (or any other error) to one of the
// status codes the reference server's handle_rejection produces: 400 is
// the catch-all for a rejected domain operation, 401 for an unresolvable
// caller identity, 500 for anything unexpected.
func writeGameError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch gameerr.KindOf(err) {
	case gameerr.OutOfBounds, gameerr.InvalidPath, gameerr.RoomFull, gameerr.ColorTaken,
		gameerr.NotInLobby, gameerr.InvalidArgument, gameerr.RoomNotFound,
		gameerr.NotYourTurn, gameerr.NotYourCone, gameerr.Transport:
		status = http.StatusBadRequest
	case gameerr.UserNotFound:
		status = http.StatusUnauthorized
	}
	writeJSONError(w, status, err.Error())
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"code": http.StatusText(status), "message": message})
}
