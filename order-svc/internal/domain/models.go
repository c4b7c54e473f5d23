package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusOpen      = "open"
	OrderStatusFinalized = "finalized"
)

type Ingredient struct {
	ID        string          `json:"ingredient_id"`
	Name      string          `json:"name"`
	Stock     int             `json:"stock"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type MenuItem struct {
	ID    string          `json:"menu_id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// BillOfMaterialsEntry is the quantity of one ingredient consumed by a single unit of a menu item.
type BillOfMaterialsEntry struct {
	MenuID          string `json:"menu_id"`
	IngredientID    string `json:"ingredient_id"`
	QuantityPerUnit int    `json:"quantity_per_unit"`
}

type Order struct {
	ID         string          `json:"order_id"`
	Date       time.Time       `json:"date"`
	CustomerID string          `json:"customer_id"`
	StaffID    string          `json:"staff_id"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	QRCode     string          `json:"qr_code,omitempty"`
	Lines      []OrderLine     `json:"lines"`
}

func (o *Order) IsFinalized() bool {
	return o.Status == OrderStatusFinalized
}

// LinesTotal sums the price of every line currently attached to the order.
func (o *Order) LinesTotal() decimal.Decimal {
	return SumLines(o.Lines)
}

type OrderLine struct {
	ID        int64           `json:"id"`
	OrderID   string          `json:"order_id"`
	MenuID    string          `json:"menu_id"`
	MenuName  string          `json:"menu_name,omitempty"`
	Quantity  int             `json:"quantity"`
	LinePrice decimal.Decimal `json:"line_price"`
}

func SumLines(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LinePrice)
	}
	return total
}

// StockMovement records how much of an ingredient a reservation consumed.
type StockMovement struct {
	IngredientID string `json:"ingredient_id"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	Amount       int    `json:"amount"`
	Remaining    int    `json:"remaining"`
}

type Reservation struct {
	Line      OrderLine       `json:"line"`
	Movements []StockMovement `json:"stock_movements"`
}

type Feedback struct {
	ID         int64     `json:"id"`
	CustomerID string    `json:"customer_id"`
	StaffID    string    `json:"staff_id"`
	Date       time.Time `json:"date"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
}

type SalesRank struct {
	MenuID   string `json:"menu_id"`
	Quantity int    `json:"quantity"`
}
