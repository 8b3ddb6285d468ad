package orders

import "context"

type retryCtxKey struct{}

// RetryCounters holds per-fetch retry attribution that the transport updates.
type RetryCounters struct {
	Total     int64
	Status429 int64
	Status5xx int64
	Net       int64
}

// WithRetryCounters attaches rc to ctx so the transport can attribute
// retries to this fetch.
func WithRetryCounters(ctx context.Context, rc *RetryCounters) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, retryCtxKey{}, rc)
}

func getRetryCounters(ctx context.Context) *RetryCounters {
	if ctx == nil {
		return nil
	}
	rc, _ := ctx.Value(retryCtxKey{}).(*RetryCounters)
	return rc
}
