package models

import "time"

// CustomerEventType is the routing key of a customer lifecycle event.
type CustomerEventType string

const (
	CustomerCreated CustomerEventType = "customer.created"
	CustomerUpdated CustomerEventType = "customer.updated"
	CustomerDeleted CustomerEventType = "customer.deleted"
)

// CustomerEvent is published after a successful mutation. It never carries the password hash.
type CustomerEvent struct {
	Type          CustomerEventType `json:"type"`
	CustomerID    int64             `json:"customerId"`
	Email         string            `json:"email,omitempty"`
	CorrelationID string            `json:"correlationId,omitempty"`
	OccurredAt    time.Time         `json:"occurredAt"`
}
