package service

import (
	"context"
)

// LinkEvent is published when a pairing-related state change happens, so that
// downstream consumers (bot notifiers, analytics) can react asynchronously.
type LinkEvent struct {
	RequestID       string `json:"request_id,omitempty"` // For distributed tracing
	EventType       string `json:"event_type"`           // "session_registered", "link_confirmed".
	ExternalID      string `json:"external_id"`
	LoyaltyUsername string `json:"loyalty_username,omitempty"`
	SyncID          string `json:"sync_id,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishLinkEvent publishes a pairing event for async processing
	PublishLinkEvent(ctx context.Context, event *LinkEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
