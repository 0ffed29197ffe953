package common

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP identifies the caller for rate limiting. The router runs chi's
// RealIP middleware ahead of the limiter, so RemoteAddr already reflects
// trusted proxy headers; forwarding headers are only consulted when the
// request never passed through that middleware.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if ip := hostOnly(r.RemoteAddr); ip != "" {
		return ip
	}
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		// First hop in the chain is the originating client.
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return strings.TrimSpace(r.Header.Get("X-Real-IP"))
}

func hostOnly(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	if ip := net.ParseIP(strings.Trim(addr, "[]")); ip != nil {
		return ip.String()
	}
	return ""
}
