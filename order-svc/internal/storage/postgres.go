package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restorify/order-svc/internal/domain"
	"restorify/order-svc/internal/service"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

var (
	_ service.CatalogRepository  = (*PostgresRepository)(nil)
	_ service.PartyDirectory     = (*PostgresRepository)(nil)
	_ service.OrderRepository    = (*PostgresRepository)(nil)
	_ service.UnitOfWork         = (*PostgresRepository)(nil)
	_ service.FeedbackRepository = (*PostgresRepository)(nil)
	_ service.Tx                 = (*postgresTx)(nil)
)

func (r *PostgresRepository) GetMenuItem(ctx context.Context, menuID string) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, price FROM menu_items WHERE id = $1", menuID).
		Scan(&item.ID, &item.Name, &item.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUnknownMenuItem
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load menu item: %w", err)
	}
	return &item, nil
}

// ListBillOfMaterials orders entries by ingredient id, which also fixes the order in which
// ingredient rows are locked across every menu item.
func (r *PostgresRepository) ListBillOfMaterials(ctx context.Context, menuID string) ([]domain.BillOfMaterialsEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT menu_id, ingredient_id, quantity_per_unit
		FROM bill_of_materials
		WHERE menu_id = $1
		ORDER BY ingredient_id`, menuID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.BillOfMaterialsEntry{}
	for rows.Next() {
		var entry domain.BillOfMaterialsEntry
		if err := rows.Scan(&entry.MenuID, &entry.IngredientID, &entry.QuantityPerUnit); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *PostgresRepository) CustomerExists(ctx context.Context, customerID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)", customerID).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) StaffExists(ctx context.Context, staffID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM staff WHERE id = $1)", staffID).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO orders (id, order_date, customer_id, staff_id, total, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		order.ID, order.Date, order.CustomerID, order.StaffID, order.Total, order.Status)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateOrderID
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, `
		SELECT id, order_date, customer_id, staff_id, total, status
		FROM orders WHERE id = $1`, orderID))
	if err != nil {
		return nil, err
	}

	lines, err := listOrderLines(ctx, r.DB, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}
	order.Lines = lines
	return order, nil
}

func (r *PostgresRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, order_date, customer_id, staff_id, total, status
		FROM orders
		ORDER BY order_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.Date, &order.CustomerID, &order.StaffID, &order.Total, &order.Status); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, orderID string, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE orders SET qr_code = $1 WHERE id = $2", qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, orderID string) ([]byte, error) {
	var qrCode []byte
	err := r.DB.QueryRowContext(ctx, "SELECT qr_code FROM orders WHERE id = $1", orderID).Scan(&qrCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return qrCode, nil
}

func (r *PostgresRepository) InsertFeedback(ctx context.Context, feedback *domain.Feedback) error {
	var comment sql.NullString
	if feedback.Comment != nil {
		comment = sql.NullString{String: *feedback.Comment, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO feedback (customer_id, staff_id, feedback_date, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		feedback.CustomerID, feedback.StaffID, feedback.Date, feedback.Rating, comment).
		Scan(&feedback.ID)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListFeedback(ctx context.Context) ([]domain.Feedback, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, customer_id, staff_id, feedback_date, rating, comment
		FROM feedback
		ORDER BY feedback_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feedback := []domain.Feedback{}
	for rows.Next() {
		var item domain.Feedback
		var comment sql.NullString
		if err := rows.Scan(&item.ID, &item.CustomerID, &item.StaffID, &item.Date, &item.Rating, &comment); err != nil {
			return nil, err
		}
		if comment.Valid {
			text := comment.String
			item.Comment = &text
		}
		feedback = append(feedback, item)
	}
	return feedback, rows.Err()
}

// WithinTx runs fn inside one database transaction and rolls back every write when fn fails.
func (r *PostgresRepository) WithinTx(ctx context.Context, fn func(tx service.Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&postgresTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type postgresTx struct {
	tx *sql.Tx
}

func (t *postgresTx) LockOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return scanOrder(t.tx.QueryRowContext(ctx, `
		SELECT id, order_date, customer_id, staff_id, total, status
		FROM orders WHERE id = $1
		FOR UPDATE`, orderID))
}

func (t *postgresTx) LockIngredient(ctx context.Context, ingredientID string) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	err := t.tx.QueryRowContext(ctx, `
		SELECT id, name, stock, unit, unit_price
		FROM ingredients WHERE id = $1
		FOR UPDATE`, ingredientID).
		Scan(&ingredient.ID, &ingredient.Name, &ingredient.Stock, &ingredient.Unit, &ingredient.UnitPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownIngredient, ingredientID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock ingredient %s: %w", ingredientID, err)
	}
	return &ingredient, nil
}

func (t *postgresTx) DecrementStock(ctx context.Context, ingredientID string, amount int) error {
	if amount <= 0 {
		return domain.ErrInvalidQuantity
	}
	result, err := t.tx.ExecContext(ctx, `
		UPDATE ingredients SET stock = stock - $1
		WHERE id = $2 AND $1 > 0 AND stock >= $1`, amount, ingredientID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (t *postgresTx) InsertOrderLine(ctx context.Context, line *domain.OrderLine) error {
	return t.tx.QueryRowContext(ctx, `
		INSERT INTO order_lines (order_id, menu_id, quantity, line_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		line.OrderID, line.MenuID, line.Quantity, line.LinePrice).
		Scan(&line.ID)
}

func (t *postgresTx) ListOrderLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	return listOrderLines(ctx, t.tx, orderID)
}

func (t *postgresTx) FinalizeOrder(ctx context.Context, orderID string, total decimal.Decimal) error {
	_, err := t.tx.ExecContext(ctx,
		"UPDATE orders SET total = $1, status = $2 WHERE id = $3",
		total, domain.OrderStatusFinalized, orderID)
	return err
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func listOrderLines(ctx context.Context, q queryer, orderID string) ([]domain.OrderLine, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT ol.id, ol.order_id, ol.menu_id, m.name, ol.quantity, ol.line_price
		FROM order_lines ol
		JOIN menu_items m ON ol.menu_id = m.id
		WHERE ol.order_id = $1
		ORDER BY ol.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.OrderLine{}
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.MenuID, &line.MenuName, &line.Quantity, &line.LinePrice); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func scanOrder(row *sql.Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(&order.ID, &order.Date, &order.CustomerID, &order.StaffID, &order.Total, &order.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &order, nil
}
