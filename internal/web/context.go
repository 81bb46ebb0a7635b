package web

import (
	"net"
	"net/http"
	"strings"

	"github.com/JonMunkholm/lists/internal/core"
	"github.com/google/uuid"
)

// Headers naming the acting user. They identify, they do not authenticate.
const (
	headerUserID   = "X-User-ID"
	headerUserName = "X-User-Name"
)

// withRequestUser puts the acting user and client IP into the request
// context. Requests without user headers carry no user.
func withRequestUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := core.ContextWithIPAddress(r.Context(), clientIP(r))

		name := strings.TrimSpace(r.Header.Get(headerUserName))
		id, _ := uuid.Parse(strings.TrimSpace(r.Header.Get(headerUserID)))
		if name != "" || id != uuid.Nil {
			ctx = core.ContextWithUser(ctx, core.User{ID: id, Name: name})
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientIP returns the host part of RemoteAddr, which TrustedRealIP has
// already resolved to the client address.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
