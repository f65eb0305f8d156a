package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const actorIDKey contextKey = "actor_id"

// WithActor reads the X-Actor-ID header into the request context so handlers
// can attribute mutations. Absent header means an anonymous operator; the
// write still proceeds.
func WithActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actor := r.Header.Get("X-Actor-ID"); actor != "" {
			r = r.WithContext(context.WithValue(r.Context(), actorIDKey, actor))
		}
		next.ServeHTTP(w, r)
	})
}

// ActorID returns the acting operator's id from the context, or "" when the
// request carried none.
func ActorID(ctx context.Context) string {
	if actor, ok := ctx.Value(actorIDKey).(string); ok {
		return actor
	}
	return ""
}
