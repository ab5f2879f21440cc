// Package events defines domain events published after inventory mutations.
// Events are written to a transactional outbox and relayed to the audit sink
// asynchronously, so a sink failure never rolls back a committed mutation.
package events

import (
	"context"
	"time"

	"barstock/internal/core/id"
	"barstock/internal/core/types"
)

// Aggregate types.
const (
	AggregateItem = "Item"
)

// Event types.
const (
	TypePurchaseRecorded = "PurchaseRecorded"
	TypeStockAllocated   = "StockAllocated"
)

// Event is a domain event to be published via the outbox.
type Event struct {
	AggregateType string
	AggregateID   id.ID
	EventType     string
	Payload       any
}

// Publisher writes events to the outbox within the current transaction.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// PurchaseRecordedPayload describes a recorded purchase.
type PurchaseRecordedPayload struct {
	PurchaseID           id.ID          `json:"purchaseId"`
	ItemID               id.ID          `json:"itemId"`
	ItemKind             string         `json:"itemKind"`
	Quantity             types.Quantity `json:"quantity"`
	UnitPrice            string         `json:"unitPrice"`
	ResultingAverageCost string         `json:"resultingAverageCost"`
	Supplier             string         `json:"supplier"`
	ResponsibleUser      string         `json:"responsibleUser,omitempty"`
	PurchaseDate         time.Time      `json:"purchaseDate"`
}

// StockAllocatedPayload describes one allocation call.
type StockAllocatedPayload struct {
	AllocationID id.ID          `json:"allocationId"`
	ItemID       id.ID          `json:"itemId"`
	Quantity     types.Quantity `json:"quantity"`
	LocationIDs  []id.ID        `json:"locationIds"`
	Created      bool           `json:"created"` // false when the top-up branch ran
	Transfers    int            `json:"transfers"`
}
