package ports

import "context"

// Notifier delivers a rendered message to the owner through whatever
// chat platform the deployment is wired to. Delivery, formatting and
// retry policy live outside the core.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Claims carries the subject of a validated access token.
type Claims struct {
	Subject string
}
