package ports

import "context"

// SmsSender delivers one text message. Implementations must be safe for
// concurrent use: the notification dispatcher calls Send from several
// goroutines at once.
type SmsSender interface {
	// Send returns the provider message id on success.
	Send(ctx context.Context, phone, text string) (string, error)
}
