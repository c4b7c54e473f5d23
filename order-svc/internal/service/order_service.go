package service

import (
	"context"
	"fmt"
	"time"

	"restorify/order-svc/internal/domain"

	"go.uber.org/zap"
)

type OpenOrderInput struct {
	ID         string    `json:"order_id"`
	Date       time.Time `json:"date"`
	CustomerID string    `json:"customer_id"`
	StaffID    string    `json:"staff_id"`
}

type OrderService struct {
	orders    OrderRepository
	parties   PartyDirectory
	uow       UnitOfWork
	engine    ReservationEngineInterface
	publisher EventPublisher
	qrEncoder QRGenerator
	logger    *zap.Logger
	now       func() time.Time
}

func NewOrderService(
	orders OrderRepository,
	parties PartyDirectory,
	uow UnitOfWork,
	engine ReservationEngineInterface,
	publisher EventPublisher,
	qr QRGenerator,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		parties:   parties,
		uow:       uow,
		engine:    engine,
		publisher: publisher,
		qrEncoder: qr,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *OrderService) Open(ctx context.Context, input OpenOrderInput) (*domain.Order, error) {
	if input.ID == "" || input.CustomerID == "" || input.StaffID == "" {
		return nil, domain.ErrMissingReference
	}

	if err := requireParty(ctx, s.parties.CustomerExists, input.CustomerID, domain.ErrUnknownCustomer); err != nil {
		return nil, err
	}
	if err := requireParty(ctx, s.parties.StaffExists, input.StaffID, domain.ErrUnknownStaff); err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	order := &domain.Order{
		ID:         input.ID,
		Date:       truncateToDay(date),
		CustomerID: input.CustomerID,
		StaffID:    input.StaffID,
		Status:     domain.OrderStatusOpen,
		Lines:      []domain.OrderLine{},
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order opened",
		zap.String("order_id", order.ID),
		zap.String("customer_id", order.CustomerID),
		zap.String("staff_id", order.StaffID))
	return order, nil
}

func (s *OrderService) AddLine(ctx context.Context, orderID, menuID string, quantity int) (*domain.Reservation, error) {
	return s.engine.Reserve(ctx, orderID, menuID, quantity)
}

// Finalize fixes the order's total to the sum of its lines and closes it to further lines.
func (s *OrderService) Finalize(ctx context.Context, orderID string) (*domain.Order, error) {
	var finalized *domain.Order
	err := s.uow.WithinTx(ctx, func(tx Tx) error {
		order, err := tx.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order.IsFinalized() {
			return domain.ErrOrderFinalized
		}

		lines, err := tx.ListOrderLines(ctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to load order lines: %w", err)
		}
		if len(lines) == 0 {
			return domain.ErrEmptyOrder
		}

		total := domain.SumLines(lines)
		if err := tx.FinalizeOrder(ctx, orderID, total); err != nil {
			return fmt.Errorf("failed to finalize order: %w", err)
		}

		order.Lines = lines
		order.Total = total
		order.Status = domain.OrderStatusFinalized
		finalized = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order finalized",
		zap.String("order_id", finalized.ID),
		zap.Int("lines", len(finalized.Lines)),
		zap.String("total", finalized.Total.StringFixed(2)))

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(finalized.ID); err == nil {
			if err := s.orders.SaveQRCode(ctx, finalized.ID, qr); err != nil {
				s.logger.Warn("failed to store feedback qr code", zap.String("order_id", finalized.ID), zap.Error(err))
			} else {
				finalized.QRCode = QRLink(finalized.ID)
			}
		} else {
			s.logger.Warn("failed to generate feedback qr code", zap.String("order_id", finalized.ID), zap.Error(err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, domain.NewOrderFinalizedMessage(finalized, s.now())); err != nil {
			s.logger.Warn("failed to publish order_finalized", zap.String("order_id", finalized.ID), zap.Error(err))
		}
	}

	return finalized, nil
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsFinalized() {
		order.QRCode = QRLink(order.ID)
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx)
}

// QRCode returns the stored feedback QR code, regenerating it when the stored copy is missing.
func (s *OrderService) QRCode(ctx context.Context, orderID string) ([]byte, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsFinalized() {
		return nil, domain.ErrOrderNotFinalized
	}

	qr, err := s.orders.GetQRCode(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(orderID); err == nil {
			if err := s.orders.SaveQRCode(ctx, orderID, regenerated); err != nil {
				s.logger.Warn("failed to store feedback qr code", zap.String("order_id", orderID), zap.Error(err))
			}
			return regenerated, nil
		}
	}
	return qr, nil
}

func requireParty(ctx context.Context, exists func(context.Context, string) (bool, error), id string, notFound error) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to resolve reference %s: %w", id, err)
	}
	if !ok {
		return notFound
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
