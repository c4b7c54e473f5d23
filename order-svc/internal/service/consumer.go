package service

import (
	"context"
	"encoding/json"
	"errors"

	"restorify/order-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Consumer projects finalized orders into daily sales counters.
type Consumer struct {
	Reader *kafka.Reader
	Store  SalesStore
	Logger *zap.Logger
}

func NewConsumer(reader *kafka.Reader, store SalesStore, logger *zap.Logger) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
		Logger: logger,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	c.Logger.Info("starting sales projection consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				c.Logger.Info("sales projection consumer stopped")
				return
			}
			c.Logger.Warn("error reading message", zap.Error(err))
			continue
		}

		var msg domain.KafkaMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			c.Logger.Warn("error unmarshaling message", zap.Error(err))
			continue
		}

		c.ProcessOrder(ctx, msg)
	}
}

func (c *Consumer) ProcessOrder(ctx context.Context, msg domain.KafkaMessage) {
	if msg.Type != domain.EventOrderFinalized {
		return
	}

	for _, line := range msg.Lines {
		if err := c.Store.RecordSale(ctx, msg.Date, line.MenuID, line.Quantity); err != nil {
			c.Logger.Warn("error recording sale",
				zap.String("order_id", msg.OrderID),
				zap.String("menu_id", line.MenuID),
				zap.Error(err))
			return
		}
	}

	c.Logger.Debug("order projected into sales", zap.String("order_id", msg.OrderID), zap.Int("lines", len(msg.Lines)))
}

func (c *Consumer) TopSellers(ctx context.Context, date string, limit int) ([]domain.SalesRank, error) {
	if limit <= 0 {
		limit = 5
	}
	return c.Store.TopSellers(ctx, date, limit)
}
