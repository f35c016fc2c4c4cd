package http

import "context"

type contextKey string

const requestStateContextKey contextKey = "pagetitle/request-state"

// Outcomes of the title lookup, reported in the access log.
const (
	outcomeFound            = "found"
	outcomeEmpty            = "empty"
	outcomeStoreUnavailable = "store_unavailable"
	outcomePanic            = "panic"
)

// requestState is created once per request and shared by middleware and handlers.
type requestState struct {
	id       string
	clientIP string
	outcome  string
}

func stateFromContext(ctx context.Context) *requestState {
	if ctx == nil {
		return nil
	}
	state, _ := ctx.Value(requestStateContextKey).(*requestState)
	return state
}

// RequestIDFromContext extracts the request identifier from the context when available.
func RequestIDFromContext(ctx context.Context) string {
	if state := stateFromContext(ctx); state != nil {
		return state.id
	}
	return ""
}

func setOutcome(ctx context.Context, outcome string) {
	if state := stateFromContext(ctx); state != nil {
		state.outcome = outcome
	}
}
