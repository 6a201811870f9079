package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// HealthCheckerFunc adapts a plain function to HealthChecker.
type HealthCheckerFunc func(ctx context.Context) bool

func (f HealthCheckerFunc) Healthy(ctx context.Context) bool {
	return f(ctx)
}

// NewOkHealthChecker reports healthy unconditionally; used by backends with
// nothing to ping such as files or memory.
func NewOkHealthChecker() HealthChecker {
	return HealthCheckerFunc(func(context.Context) bool { return true })
}
