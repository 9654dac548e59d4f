package web

import (
	"net"
	"net/http"

	"github.com/JonMunkholm/institute/internal/core"
)

// withCaller returns r's context carrying the caller's IP and User-Agent for
// the import history.
func withCaller(r *http.Request) *http.Request {
	ip := r.RemoteAddr // already rewritten by TrustedRealIP
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	ctx := core.WithCaller(r.Context(), core.Caller{
		IPAddress: ip,
		UserAgent: r.UserAgent(),
	})
	return r.WithContext(ctx)
}
