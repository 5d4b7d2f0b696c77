package services

import "context"

// EventPublisher emits domain notifications for external audit/event
// collaborators. Delivery is best effort: the core never blocks on it and
// never fails an operation because publishing failed.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload any) error
}
