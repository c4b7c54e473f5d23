package service

import (
	"context"

	"restorify/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type CatalogRepository interface {
	GetMenuItem(ctx context.Context, menuID string) (*domain.MenuItem, error)
	ListBillOfMaterials(ctx context.Context, menuID string) ([]domain.BillOfMaterialsEntry, error)
}

type PartyDirectory interface {
	CustomerExists(ctx context.Context, customerID string) (bool, error)
	StaffExists(ctx context.Context, staffID string) (bool, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	SaveQRCode(ctx context.Context, orderID string, qr []byte) error
	GetQRCode(ctx context.Context, orderID string) ([]byte, error)
}

// Tx is the set of writes that must commit or roll back together. LockOrder and
// LockIngredient hold an exclusive lock on the row until the transaction ends.
type Tx interface {
	LockOrder(ctx context.Context, orderID string) (*domain.Order, error)
	LockIngredient(ctx context.Context, ingredientID string) (*domain.Ingredient, error)
	DecrementStock(ctx context.Context, ingredientID string, amount int) error
	InsertOrderLine(ctx context.Context, line *domain.OrderLine) error
	ListOrderLines(ctx context.Context, orderID string) ([]domain.OrderLine, error)
	FinalizeOrder(ctx context.Context, orderID string, total decimal.Decimal) error
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

type FeedbackRepository interface {
	InsertFeedback(ctx context.Context, feedback *domain.Feedback) error
	ListFeedback(ctx context.Context) ([]domain.Feedback, error)
}

type FeedbackMarker interface {
	FeedbackMarkerKey(orderID string) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, msg domain.KafkaMessage) error
}

type SalesStore interface {
	RecordSale(ctx context.Context, date, menuID string, quantity int) error
	TopSellers(ctx context.Context, date string, limit int) ([]domain.SalesRank, error)
}

type ReservationEngineInterface interface {
	Reserve(ctx context.Context, orderID, menuID string, quantity int) (*domain.Reservation, error)
}

type OrderServiceInterface interface {
	Open(ctx context.Context, input OpenOrderInput) (*domain.Order, error)
	AddLine(ctx context.Context, orderID, menuID string, quantity int) (*domain.Reservation, error)
	Finalize(ctx context.Context, orderID string) (*domain.Order, error)
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	QRCode(ctx context.Context, orderID string) ([]byte, error)
}

type FeedbackServiceInterface interface {
	Capture(ctx context.Context, input FeedbackInput) (*domain.Feedback, error)
	CaptureForOrder(ctx context.Context, orderID string, rating int, comment string) (*domain.Feedback, error)
	List(ctx context.Context) ([]domain.Feedback, error)
}

type SalesServiceInterface interface {
	TopSellers(ctx context.Context, date string, limit int) ([]domain.SalesRank, error)
}

var (
	_ ReservationEngineInterface = (*ReservationEngine)(nil)
	_ OrderServiceInterface      = (*OrderService)(nil)
	_ FeedbackServiceInterface   = (*FeedbackService)(nil)
	_ SalesServiceInterface      = (*Consumer)(nil)
)
