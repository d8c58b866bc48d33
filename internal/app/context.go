package app

import "context"

type sessionInfoKey struct{}

// SessionInfo identifies the controller session a request belongs to.
type SessionInfo struct {
	SessionId    string
	ControllerId string
}

// WithSessionInfo stores the session information in the context.
func WithSessionInfo(ctx context.Context, info SessionInfo) context.Context {
	return context.WithValue(ctx, sessionInfoKey{}, info)
}

// GetSessionInfo returns the session information of the context, or an empty value.
func GetSessionInfo(ctx context.Context) SessionInfo {
	info, _ := ctx.Value(sessionInfoKey{}).(SessionInfo)
	return info
}
