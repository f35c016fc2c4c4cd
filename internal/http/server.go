package http

import (
	stdhttp "net/http"
	"net/netip"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"pagetitle/app/internal/pagetitle"
)

const jsonContentType = "application/json"

// Options configures the HTTP server wiring.
type Options struct {
	Repository  pagetitle.Repository
	Database    *gorm.DB
	Logger      *logrus.Logger
	RateLimiter RateLimiterSettings
}

// RateLimiterSettings configures the HTTP rate limiter behaviour.
type RateLimiterSettings struct {
	RequestsPerSecond float64
	Burst             int
	ClientTTL         time.Duration
	// TrustedProxies lists addresses or CIDR prefixes whose forwarding headers are believed.
	TrustedProxies []string
}

// Server wires the HTTP transport layer via Huma.
type Server struct {
	api            huma.API
	mux            *stdhttp.ServeMux
	titles         pagetitle.Repository
	logger         *logrus.Logger
	db             *gorm.DB
	rateLimiter    *RateLimiter
	trustedProxies []netip.Prefix
}

// NewServer constructs the HTTP server.
func NewServer(opts Options) (*Server, error) {
	if opts.Repository == nil {
		return nil, eris.New("page title repository is required")
	}
	if opts.Database == nil {
		return nil, eris.New("database is required")
	}

	settings := opts.RateLimiter
	if settings.Burst <= 0 {
		return nil, eris.New("rate limiter burst must be greater than zero")
	}
	if settings.RequestsPerSecond <= 0 {
		return nil, eris.New("rate limiter requests per second must be greater than zero")
	}
	if settings.ClientTTL <= 0 {
		return nil, eris.New("rate limiter client TTL must be greater than zero")
	}

	trustedProxies, err := parseTrustedProxies(settings.TrustedProxies)
	if err != nil {
		return nil, err
	}

	mux := stdhttp.NewServeMux()
	api := humago.New(mux, newAPIConfig())

	srv := &Server{
		api:            api,
		mux:            mux,
		titles:         opts.Repository,
		logger:         opts.Logger,
		db:             opts.Database,
		rateLimiter:    NewRateLimiter(settings.Burst, settings.RequestsPerSecond, settings.ClientTTL),
		trustedProxies: trustedProxies,
	}

	srv.registerMiddlewares()
	srv.registerRoutes()

	return srv, nil
}

// newAPIConfig returns the Huma defaults restricted to JSON, without the $schema link
// that would otherwise be injected into every response body.
func newAPIConfig() huma.Config {
	config := huma.DefaultConfig("Page Title API", "1.0.0")
	config.CreateHooks = nil
	config.Formats = map[string]huma.Format{
		jsonContentType: huma.DefaultJSONFormat,
		"json":          huma.DefaultJSONFormat,
	}
	config.DefaultFormat = jsonContentType
	return config
}

// Handler exposes the underlying HTTP handler for wiring into the application.
func (s *Server) Handler() stdhttp.Handler {
	return s.mux
}

// API exposes the underlying Huma API instance.
func (s *Server) API() huma.API {
	return s.api
}

// Close stops background work owned by the server. It does not close the database.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

func (s *Server) registerMiddlewares() {
	s.api.UseMiddleware(
		s.requestContextMiddleware(),
		s.accessLogMiddleware(),
		s.recoveryMiddleware(),
		s.exactPathMiddleware(),
		s.rateLimitMiddleware(),
	)
}

func (s *Server) registerRoutes() {
	s.registerTitleRoute()
	s.registerHealthRoute()
}

func (s *Server) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.mux.ServeHTTP(w, r)
}
