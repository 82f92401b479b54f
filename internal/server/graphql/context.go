package graphql

import "context"

type ctxKey string

const userIDKey ctxKey = "userID"

// withUserID attaches a verified user identity to the request context.
func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// userIDFromContext returns the verified identity, or "" for an anonymous
// request.
func userIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}
