package api

import (
	"context"
	"time"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

// QueryTimeout is the default timeout for store queries
const QueryTimeout = 10 * time.Second

// WithQueryTimeout creates a context with query timeout
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}

type callerKey struct{}

// WithCaller stores the authenticated caller identity in ctx
func WithCaller(ctx context.Context, caller models.Address) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the identity stored by WithCaller
func CallerFromContext(ctx context.Context) (models.Address, bool) {
	caller, ok := ctx.Value(callerKey{}).(models.Address)
	return caller, ok && !caller.IsZero()
}
