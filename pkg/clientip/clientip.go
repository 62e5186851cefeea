// Package clientip resolves the browser address of a request, optionally
// trusting proxy headers, and carries it into contexts and log records.
package clientip

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/textproto"
	"strings"
)

// Common proxy headers, in the order they are usually trusted.
const (
	HeaderCloudflare   = "CF-Connecting-IP"
	HeaderForwardedFor = "X-Forwarded-For"
	HeaderRealIP       = "X-Real-IP"
)

type contextKey struct{}

// WithContext stores ip in ctx.
func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

// FromContext returns the address stored in ctx or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

// Resolve returns the first valid address found in the trusted headers,
// then the TCP peer. X-Forwarded-For contributes its left-most valid entry.
// An empty string means no valid address was found.
func Resolve(r *http.Request, trusted ...string) string {
	for _, h := range trusted {
		raw := r.Header.Get(h)
		if raw == "" {
			continue
		}
		if textproto.CanonicalMIMEHeaderKey(h) == HeaderForwardedFor {
			for part := range strings.SplitSeq(raw, ",") {
				if ip := normalize(part); ip != "" {
					return ip
				}
			}
			continue
		}
		if ip := normalize(raw); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

// Middleware stores the resolved address in the request context.
func Middleware(trusted ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := Resolve(r, trusted...)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), ip)))
		})
	}
}

// LoggerExtractor adds "client_ip" to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if ip := FromContext(ctx); ip != "" {
			return slog.String("client_ip", ip), true
		}
		return slog.Attr{}, false
	}
}

func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
