package tools

import (
	"context"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
)

type sessionKey struct{}

// WithSession makes the session of the running turn visible to tools.
func WithSession(ctx context.Context, state *model.SessionState) context.Context {
	return context.WithValue(ctx, sessionKey{}, state)
}

// SessionFrom returns the session attached by WithSession, or nil.
func SessionFrom(ctx context.Context) *model.SessionState {
	state, _ := ctx.Value(sessionKey{}).(*model.SessionState)
	return state
}
