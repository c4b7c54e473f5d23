package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderFinalized   = "order_finalized"
	EventFeedbackCaptured = "feedback_captured"
)

type KafkaMessage struct {
	Type       string          `json:"type"`
	OrderID    string          `json:"order_id,omitempty"`
	CustomerID string          `json:"customer_id"`
	StaffID    string          `json:"staff_id"`
	Date       string          `json:"date"`
	Total      decimal.Decimal `json:"total"`
	Lines      []MessageLine   `json:"lines,omitempty"`
	Rating     int             `json:"rating,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

type MessageLine struct {
	MenuID   string `json:"menu_id"`
	Quantity int    `json:"quantity"`
}

// NewOrderFinalizedMessage builds the event published once an order's total is fixed.
func NewOrderFinalizedMessage(order *Order, now time.Time) KafkaMessage {
	lines := make([]MessageLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, MessageLine{MenuID: line.MenuID, Quantity: line.Quantity})
	}
	return KafkaMessage{
		Type:       EventOrderFinalized,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		StaffID:    order.StaffID,
		Date:       order.Date.Format(DateLayout),
		Total:      order.Total,
		Lines:      lines,
		Timestamp:  now,
	}
}

const DateLayout = "2006-01-02"
