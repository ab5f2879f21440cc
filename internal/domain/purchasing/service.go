package purchasing

import (
	"context"
	"fmt"
	"time"

	"barstock/internal/core/apperror"
	"barstock/internal/core/id"
	"barstock/internal/core/tx"
	"barstock/internal/domain/catalogs/item"
	"barstock/internal/domain/events"
	"barstock/pkg/logger"
)

// Service records purchase events and maintains item stock and cost.
type Service struct {
	repo      Repository
	items     item.Repository
	txManager tx.Manager
	publisher events.Publisher // optional
}

// NewService creates a new purchase recorder service.
func NewService(repo Repository, items item.Repository, txManager tx.Manager, publisher events.Publisher) *Service {
	return &Service{
		repo:      repo,
		items:     items,
		txManager: txManager,
		publisher: publisher,
	}
}

// RecordPurchase validates and persists one purchase event, computes the new
// weighted-average cost and bumps the item's stock, all in one transaction.
// The item row is locked first so concurrent purchases of the same item are
// serialized; different items proceed in parallel.
func (s *Service) RecordPurchase(ctx context.Context, input RecordInput) (*Purchase, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var purchase *Purchase

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		itm, err := s.items.GetForUpdate(ctx, input.ItemID())
		if err != nil {
			return err
		}

		if itm.Kind != input.ItemKind() {
			return apperror.NewValidation("item kind does not match reference").
				WithDetail("item_id", itm.ID.String()).
				WithDetail("kind", string(itm.Kind))
		}

		if itm.Stock.IsPositive() && !itm.AverageCost.IsPositive() {
			// Positive stock with zero cost means the cost history was
			// lost; the new purchase resets the average (documented
			// policy, not data corruption handling).
			logger.Warn(ctx, "zero cost on positive stock, resetting average cost",
				"item_id", itm.ID,
				"stock", itm.Stock,
			)
		}

		newAvg := WeightedAverageCost(itm.Stock, itm.AverageCost, input.Quantity, input.UnitPrice)

		purchase = &Purchase{
			ID:                   id.New(),
			ItemID:               itm.ID,
			ItemKind:             itm.Kind,
			Quantity:             input.Quantity,
			UnitPrice:            input.UnitPrice,
			Supplier:             input.Supplier,
			PurchaseDate:         input.PurchaseDate,
			Notes:                input.Notes,
			ResponsibleUser:      input.ResponsibleUser,
			ResultingAverageCost: newAvg,
			CreatedAt:            time.Now().UTC(),
		}

		// Item mutation lands before the audit record that references it;
		// both commit or roll back together.
		if err := s.items.ApplyPurchase(ctx, itm.ID, input.Quantity, newAvg); err != nil {
			return fmt.Errorf("apply purchase to item: %w", err)
		}

		if err := s.repo.Create(ctx, purchase); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}

		if s.publisher != nil {
			err := s.publisher.Publish(ctx, events.Event{
				AggregateType: events.AggregateItem,
				AggregateID:   itm.ID,
				EventType:     events.TypePurchaseRecorded,
				Payload: events.PurchaseRecordedPayload{
					PurchaseID:           purchase.ID,
					ItemID:               itm.ID,
					ItemKind:             string(itm.Kind),
					Quantity:             purchase.Quantity,
					UnitPrice:            purchase.UnitPrice.String(),
					ResultingAverageCost: newAvg.String(),
					Supplier:             purchase.Supplier,
					ResponsibleUser:      purchase.ResponsibleUser,
					PurchaseDate:         purchase.PurchaseDate,
				},
			})
			if err != nil {
				return fmt.Errorf("publish purchase event: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase recorded",
		"purchase_id", purchase.ID,
		"item_id", purchase.ItemID,
		"quantity", purchase.Quantity,
		"resulting_average_cost", purchase.ResultingAverageCost,
	)

	return purchase, nil
}

// GetByID retrieves a purchase record.
func (s *Service) GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error) {
	return s.repo.GetByID(ctx, purchaseID)
}

// ListByItem retrieves purchase history for an item.
func (s *Service) ListByItem(ctx context.Context, itemID id.ID, filter ListFilter) ([]*Purchase, error) {
	return s.repo.ListByItem(ctx, itemID, filter)
}
