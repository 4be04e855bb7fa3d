// internal/model/customer_event.go
package model

import "time"

const (
	CustomerCreated = "customer.created"
	CustomerUpdated = "customer.updated"
	CustomerDeleted = "customer.deleted"
)

type CustomerEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"` // customer.created, customer.updated, customer.deleted
	CustomerID int       `json:"customer_id"`
	Customer   *Customer `json:"customer,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
