// Package allocation provides the allocation engine: it distributes item
// stock across locations and emits transfer ledger entries.
package allocation

import (
	"context"
	"fmt"

	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
	"barstock/internal/core/tx"
	"barstock/internal/core/types"
	"barstock/internal/domain/catalogs/item"
	"barstock/internal/domain/events"
	"barstock/internal/domain/registers/locationstock"
	"barstock/internal/domain/registers/transfer"
	"barstock/pkg/logger"
)

// Input carries one allocation request.
type Input struct {
	ItemID                 id.ID
	Quantity               types.Quantity
	DestinationLocationIDs []id.ID
}

// Validate checks the input preconditions.
func (in *Input) Validate() error {
	if id.IsNil(in.ItemID) {
		return apperror.NewValidation("item is required").
			WithDetail("field", "itemId")
	}

	if !in.Quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}

	if len(in.DestinationLocationIDs) == 0 {
		return apperror.NewValidation("at least one destination location is required").
			WithDetail("field", "destinationLocationIds")
	}

	return nil
}

// destinations returns the destination set with duplicates removed,
// first occurrence order preserved.
func (in *Input) destinations() []id.ID {
	seen := make(map[id.ID]struct{}, len(in.DestinationLocationIDs))
	out := make([]id.ID, 0, len(in.DestinationLocationIDs))
	for _, locID := range in.DestinationLocationIDs {
		if _, ok := seen[locID]; ok {
			continue
		}
		seen[locID] = struct{}{}
		out = append(out, locID)
	}
	return out
}

// Result holds the rows touched and the ledger entries emitted by one call.
// len(Transfers) == len(Rows) on every success.
type Result struct {
	Rows      []locationstock.LocationStock `json:"rows"`
	Transfers []transfer.Transfer           `json:"transfers"`

	// Created is true when the engine took the create branch.
	Created bool `json:"created"`
}

// Service is the allocation engine.
type Service struct {
	items     item.Repository
	stock     locationstock.Repository
	transfers transfer.Repository
	txManager tx.Manager
	publisher events.Publisher // optional
}

// NewService creates a new allocation engine.
func NewService(
	items item.Repository,
	stock locationstock.Repository,
	transfers transfer.Repository,
	txManager tx.Manager,
	publisher events.Publisher,
) *Service {
	return &Service{
		items:     items,
		stock:     stock,
		transfers: transfers,
		txManager: txManager,
		publisher: publisher,
	}
}

// Allocate distributes quantity to the destination locations.
//
// Policy: destinations holding an existing stock row are all topped up by the
// same quantity (not a split of the total). Only when NO destination has a
// row yet does the engine create rows, one per destination. The two branches
// never mix in one call: a destination without a row is silently skipped
// whenever a sibling destination already has one. The reconciliation report
// surfaces the resulting totals per row.
func (s *Service) Allocate(ctx context.Context, input Input) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	dests := input.destinations()
	result := &Result{}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Lock the item row first: serializes against concurrent purchases
		// and allocations of the same item, and rejects unknown items.
		itm, err := s.items.GetForUpdate(ctx, input.ItemID)
		if err != nil {
			return err
		}

		existing, err := s.stock.GetByItemForUpdate(ctx, itm.ID)
		if err != nil {
			return fmt.Errorf("load stock rows: %w", err)
		}

		byLocation := make(map[id.ID]locationstock.LocationStock, len(existing))
		for _, row := range existing {
			byLocation[row.LocationID] = row
		}

		var rows []locationstock.LocationStock
		for _, locID := range dests {
			if row, ok := byLocation[locID]; ok {
				row.TopUp(input.Quantity)
				rows = append(rows, row)
			}
		}

		if len(rows) == 0 {
			// Create branch: no destination has a row yet.
			result.Created = true
			for _, locID := range dests {
				rows = append(rows, locationstock.New(itm.ID, locID, input.Quantity))
			}
		}

		// Row writes must land before the ledger entries referencing them.
		upserted, err := s.stock.Upsert(ctx, rows)
		if err != nil {
			return fmt.Errorf("upsert stock rows: %w", err)
		}

		allocationID := id.New()
		entries := make([]transfer.Transfer, 0, len(upserted))
		for _, row := range upserted {
			entries = append(entries, transfer.New(itm.ID, row.LocationID, row.ID, allocationID, input.Quantity))
		}

		appended, err := s.transfers.Append(ctx, entries)
		if err != nil {
			return fmt.Errorf("append transfers: %w", err)
		}

		result.Rows = upserted
		result.Transfers = appended

		if s.publisher != nil {
			locIDs := make([]id.ID, 0, len(upserted))
			for _, row := range upserted {
				locIDs = append(locIDs, row.LocationID)
			}
			err := s.publisher.Publish(ctx, events.Event{
				AggregateType: events.AggregateItem,
				AggregateID:   itm.ID,
				EventType:     events.TypeStockAllocated,
				Payload: events.StockAllocatedPayload{
					AllocationID: allocationID,
					ItemID:       itm.ID,
					Quantity:     input.Quantity,
					LocationIDs:  locIDs,
					Created:      result.Created,
					Transfers:    len(appended),
				},
			})
			if err != nil {
				return fmt.Errorf("publish allocation event: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock allocated",
		"item_id", input.ItemID,
		"quantity", input.Quantity,
		"rows", len(result.Rows),
		"created", result.Created,
	)

	return result, nil
}
