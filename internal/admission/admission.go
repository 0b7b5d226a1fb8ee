// Package admission enforces per-user point budgets over fixed windows.
// State ingest and commentary calls draw from separate categories; the Redis
// implementation lets every process instance enforce one global budget per
// user.
package admission

import (
	"context"
	"time"
)

// Category names a budget bucket.
type Category string

const (
	// CategoryState throttles inbound state frames.
	CategoryState Category = "state"
	// CategoryCommentary throttles generation calls. Commentary and coach
	// share it, so both compete for the same per-user budget.
	CategoryCommentary Category = "commentary"
)

// Policy is a point budget over a window.
type Policy struct {
	Points int
	Window time.Duration
}

// Policies maps each category to its configured budget.
type Policies map[Category]Policy

// Limiter is a single-shot consume check. No retry or backoff lives here;
// callers decide what a rejection means.
type Limiter interface {
	// TryConsume spends one point under (category, identity). It returns
	// false once the window budget is exhausted. An error means the store
	// could not be reached, not that the caller was rejected.
	TryConsume(ctx context.Context, cat Category, identity string) (bool, error)
}
