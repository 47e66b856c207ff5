package tracker

import "context"

type ctxKey string

const storeKey ctxKey = "tracker_store"

// WithStore returns a context carrying s, for view code that receives its
// dependencies through a context.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey, s)
}

// FromContext returns the store placed by WithStore, or nil.
func FromContext(ctx context.Context) *Store {
	if ctx == nil {
		return nil
	}
	if s, ok := ctx.Value(storeKey).(*Store); ok {
		return s
	}
	return nil
}
