package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"restorify/order-svc/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReservationEngine converts a requested order line into a confirmed inventory commitment.
type ReservationEngine struct {
	catalog CatalogRepository
	uow     UnitOfWork
	logger  *zap.Logger
}

func NewReservationEngine(catalog CatalogRepository, uow UnitOfWork, logger *zap.Logger) *ReservationEngine {
	return &ReservationEngine{
		catalog: catalog,
		uow:     uow,
		logger:  logger,
	}
}

// Reserve checks every ingredient the menu item needs, decrements all of them and appends
// the line to the order. Either everything commits or nothing does.
func (e *ReservationEngine) Reserve(ctx context.Context, orderID, menuID string, quantity int) (*domain.Reservation, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if orderID == "" || menuID == "" {
		return nil, domain.ErrMissingReference
	}

	item, err := e.catalog.GetMenuItem(ctx, menuID)
	if err != nil {
		return nil, err
	}

	bom, err := e.catalog.ListBillOfMaterials(ctx, menuID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bill of materials: %w", err)
	}
	for _, entry := range bom {
		if entry.QuantityPerUnit > 0 && quantity > math.MaxInt/entry.QuantityPerUnit {
			return nil, domain.ErrInvalidQuantity
		}
	}

	var reservation *domain.Reservation
	err = e.uow.WithinTx(ctx, func(tx Tx) error {
		order, err := tx.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order.IsFinalized() {
			return domain.ErrOrderFinalized
		}

		locked := make([]*domain.Ingredient, 0, len(bom))
		for _, entry := range bom {
			ingredient, err := tx.LockIngredient(ctx, entry.IngredientID)
			if err != nil {
				return err
			}
			required := entry.QuantityPerUnit * quantity
			if ingredient.Stock < required {
				return &domain.InsufficientStockError{
					IngredientID: ingredient.ID,
					Name:         ingredient.Name,
					Required:     required,
					Available:    ingredient.Stock,
				}
			}
			locked = append(locked, ingredient)
		}

		movements := make([]domain.StockMovement, 0, len(bom))
		for i, entry := range bom {
			required := entry.QuantityPerUnit * quantity
			if err := tx.DecrementStock(ctx, entry.IngredientID, required); err != nil {
				return fmt.Errorf("failed to decrement stock of %s: %w", entry.IngredientID, err)
			}
			movements = append(movements, domain.StockMovement{
				IngredientID: locked[i].ID,
				Name:         locked[i].Name,
				Unit:         locked[i].Unit,
				Amount:       required,
				Remaining:    locked[i].Stock - required,
			})
		}

		line := &domain.OrderLine{
			OrderID:   orderID,
			MenuID:    item.ID,
			MenuName:  item.Name,
			Quantity:  quantity,
			LinePrice: item.Price.Mul(decimal.NewFromInt(int64(quantity))),
		}
		if err := tx.InsertOrderLine(ctx, line); err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}

		reservation = &domain.Reservation{Line: *line, Movements: movements}
		return nil
	})
	if err != nil {
		var shortage *domain.InsufficientStockError
		if errors.As(err, &shortage) {
			e.logger.Info("reservation rejected",
				zap.String("order_id", orderID),
				zap.String("menu_id", menuID),
				zap.String("ingredient_id", shortage.IngredientID),
				zap.Int("required", shortage.Required),
				zap.Int("available", shortage.Available))
		}
		return nil, err
	}

	for _, movement := range reservation.Movements {
		e.logger.Debug("stock decremented",
			zap.String("ingredient_id", movement.IngredientID),
			zap.Int("amount", movement.Amount),
			zap.Int("remaining", movement.Remaining),
			zap.String("unit", movement.Unit))
	}
	e.logger.Info("order line reserved",
		zap.String("order_id", orderID),
		zap.String("menu_id", menuID),
		zap.Int("quantity", quantity),
		zap.String("line_price", reservation.Line.LinePrice.StringFixed(2)))

	return reservation, nil
}
