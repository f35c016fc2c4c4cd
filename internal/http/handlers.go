package http

import (
	"context"
	stdhttp "net/http"

	"github.com/danielgtaylor/huma/v2"

	"pagetitle/app/internal/db"
	"pagetitle/app/internal/pagetitle"
)

const storeErrorMessage = "page title store unavailable"

type titleResponse struct {
	Body pagetitle.TitleView
}

type healthResponse struct {
	Status int
	Body   struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
}

func (s *Server) registerTitleRoute() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-page-title",
		Method:      stdhttp.MethodGet,
		Path:        "/title/",
		Summary:     "Fetch the first page title",
		Description: "Returns the title of the first stored record, or null when no record exists.",
		Errors:      []int{stdhttp.StatusInternalServerError},
	}, s.titleHandler)
}

func (s *Server) registerHealthRoute() {
	huma.Get(s.api, "/healthz", s.healthHandler, func(op *huma.Operation) {
		op.Summary = "Health check"
	})
}

func (s *Server) titleHandler(ctx context.Context, _ *struct{}) (*titleResponse, error) {
	record, err := s.titles.FirstTitle(ctx)
	if err != nil {
		setOutcome(ctx, outcomeStoreUnavailable)
		s.recordError(ctx, err, "loading page title")
		return nil, huma.Error500InternalServerError(storeErrorMessage)
	}

	if record == nil {
		setOutcome(ctx, outcomeEmpty)
	} else {
		setOutcome(ctx, outcomeFound)
	}

	return &titleResponse{Body: pagetitle.Serialize(record)}, nil
}

func (s *Server) healthHandler(ctx context.Context, _ *struct{}) (*healthResponse, error) {
	resp := &healthResponse{Status: stdhttp.StatusOK}
	resp.Body.Status = "ok"
	resp.Body.Database = "ok"

	if err := db.Ping(ctx, s.db); err != nil {
		s.recordError(ctx, err, "pinging database")
		resp.Status = stdhttp.StatusServiceUnavailable
		resp.Body.Status = "degraded"
		resp.Body.Database = "error"
	}

	return resp, nil
}

// recordError logs the failure at error level. When Sentry is configured, the logrus hook
// installed by log.InitSentry forwards that entry, so this is the only reporting path.
func (s *Server) recordError(ctx context.Context, err error, message string) {
	if err == nil || s.logger == nil {
		return
	}

	entry := s.logger.WithError(err)
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}
	entry.Error(message)
}
