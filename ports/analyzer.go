package ports

import (
	"context"

	"ikigai/domain/session"
)

// Analyzer produces a structured Ikigai analysis from a session's context
// and answers via an external generative-AI provider. Implementations own
// their retry policy; a returned error means the provider could not deliver
// a usable analysis within that budget.
type Analyzer interface {
	AnalyzeSession(ctx context.Context, userCtx session.Context, answers session.Answers) (*session.Analysis, error)
}
