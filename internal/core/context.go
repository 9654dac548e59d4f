package core

import "context"

type contextKey string

const ctxKeyCaller contextKey = "import_caller"

// Caller identifies who triggered an import. It is stored with the import run.
type Caller struct {
	IPAddress string
	UserAgent string
}

// WithCaller attaches the caller to ctx.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, ctxKeyCaller, c)
}

// CallerFromContext returns the caller attached to ctx, or the zero Caller.
func CallerFromContext(ctx context.Context) Caller {
	if c, ok := ctx.Value(ctxKeyCaller).(Caller); ok {
		return c
	}
	return Caller{}
}
