package interfaces

import "context"

// PushNotifier delivers one notification to one device token.
// Implementations must treat each call as independent: a failure for one
// token says nothing about the others.
type PushNotifier interface {
	Notify(ctx context.Context, token, title, body string, data map[string]string) error
}
