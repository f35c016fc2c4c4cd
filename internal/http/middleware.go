package http

import (
	"context"
	"net"
	stdhttp "net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

const (
	rateLimitMessage = "Too many requests. Please wait a moment and try again."
	notFoundMessage  = "resource not found"
	panicMessage     = "internal server error"
)

// requestContextMiddleware attaches the per-request state: a fresh request ID and the resolved client IP.
func (s *Server) requestContextMiddleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		state := &requestState{id: uuid.NewString()}
		if req, _ := humago.Unwrap(ctx); req != nil {
			state.clientIP = s.clientIP(req)
		}

		ctx = huma.WithContext(ctx, context.WithValue(ctx.Context(), requestStateContextKey, state))
		ctx.SetHeader("X-Request-ID", state.id)

		next(ctx)
	}
}

// accessLogMiddleware writes one entry per request once the rest of the chain has answered.
// Server errors are logged at warn level because their cause is already reported by recordError.
func (s *Server) accessLogMiddleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()
		next(ctx)

		if s.logger == nil {
			return
		}

		status := ctx.Status()
		if status == 0 {
			status = stdhttp.StatusOK
		}

		requestURL := ctx.URL()
		fields := logrus.Fields{
			"method":      ctx.Method(),
			"path":        requestURL.Path,
			"status":      status,
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000,
		}
		if op := ctx.Operation(); op != nil {
			fields["route"] = op.Path
		}
		if state := stateFromContext(ctx.Context()); state != nil {
			fields["request_id"] = state.id
			fields["client_ip"] = state.clientIP
			if state.outcome != "" {
				fields["title_outcome"] = state.outcome
			}
		}

		entry := s.logger.WithFields(fields)
		if status >= 400 {
			entry.Warn("request failed")
			return
		}
		entry.Info("request completed")
	}
}

// recoveryMiddleware turns a panic into the same problem+json 500 a store failure produces.
func (s *Server) recoveryMiddleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			err, ok := rec.(error)
			if !ok {
				err = eris.Errorf("panic: %v", rec)
			}

			setOutcome(ctx.Context(), outcomePanic)
			s.recordError(ctx.Context(), err, "panic recovered")
			s.writeProblem(ctx, stdhttp.StatusInternalServerError, panicMessage)
		}()

		next(ctx)
	}
}

// exactPathMiddleware rejects requests that only reached a static route through the
// ServeMux subtree match of a trailing-slash pattern, e.g. /title/anything.
func (s *Server) exactPathMiddleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op := ctx.Operation()
		if op == nil || strings.Contains(op.Path, "{") {
			next(ctx)
			return
		}

		requestURL := ctx.URL()
		if requestURL.Path == op.Path {
			next(ctx)
			return
		}

		s.writeProblem(ctx, stdhttp.StatusNotFound, notFoundMessage)
	}
}

func (s *Server) rateLimitMiddleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		var ip string
		if state := stateFromContext(ctx.Context()); state != nil {
			ip = state.clientIP
		}

		if s.rateLimiter.Allow(ip) {
			next(ctx)
			return
		}

		if s.logger != nil {
			s.logger.WithError(eris.New("rate limit exceeded")).WithFields(logrus.Fields{
				"client_ip":  ip,
				"request_id": RequestIDFromContext(ctx.Context()),
			}).Debug("request rate limited")
		}

		ctx.SetHeader("Retry-After", "1")
		s.writeProblem(ctx, stdhttp.StatusTooManyRequests, rateLimitMessage)
	}
}

func (s *Server) writeProblem(ctx huma.Context, status int, message string) {
	if err := huma.WriteErr(s.api, ctx, status, message); err != nil && s.logger != nil {
		s.logger.WithError(err).WithField("status", status).Error("writing error response failed")
	}
}

// clientIP returns the peer address, honouring X-Forwarded-For and X-Real-IP only when
// the peer is one of the configured trusted proxies.
func (s *Server) clientIP(req *stdhttp.Request) string {
	peer := remoteHost(req.RemoteAddr)
	if !s.isTrustedProxy(peer) {
		return peer
	}

	if forwarded := strings.TrimSpace(req.Header.Get("X-Forwarded-For")); forwarded != "" {
		if candidate := strings.TrimSpace(strings.Split(forwarded, ",")[0]); candidate != "" {
			return candidate
		}
	}

	if realIP := strings.TrimSpace(req.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	return peer
}

func (s *Server) isTrustedProxy(host string) bool {
	if len(s.trustedProxies) == 0 {
		return false
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	for _, prefix := range s.trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return strings.TrimSpace(remoteAddr)
	}
	return host
}

// parseTrustedProxies accepts bare addresses and CIDR prefixes.
func parseTrustedProxies(values []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(values))
	for _, value := range values {
		if strings.Contains(value, "/") {
			prefix, err := netip.ParsePrefix(value)
			if err != nil {
				return nil, eris.Wrapf(err, "invalid trusted proxy prefix: %s", value)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(value)
		if err != nil {
			return nil, eris.Wrapf(err, "invalid trusted proxy address: %s", value)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}
