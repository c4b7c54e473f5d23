package service

import (
	"context"
	"strings"
	"time"

	"restorify/order-svc/internal/domain"

	"go.uber.org/zap"
)

type FeedbackInput struct {
	CustomerID string    `json:"customer_id"`
	StaffID    string    `json:"staff_id"`
	Date       time.Time `json:"date"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
}

type FeedbackService struct {
	repository FeedbackRepository
	orders     OrderRepository
	parties    PartyDirectory
	marker     FeedbackMarker
	publisher  EventPublisher
	logger     *zap.Logger
	now        func() time.Time
}

func NewFeedbackService(
	repository FeedbackRepository,
	orders OrderRepository,
	parties PartyDirectory,
	marker FeedbackMarker,
	publisher EventPublisher,
	logger *zap.Logger,
) *FeedbackService {
	return &FeedbackService{
		repository: repository,
		orders:     orders,
		parties:    parties,
		marker:     marker,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *FeedbackService) Capture(ctx context.Context, input FeedbackInput) (*domain.Feedback, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domain.ErrInvalidRating
	}
	if input.CustomerID == "" || input.StaffID == "" {
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

	feedback := &domain.Feedback{
		CustomerID: input.CustomerID,
		StaffID:    input.StaffID,
		Date:       truncateToDay(date),
		Rating:     input.Rating,
	}
	if comment := strings.TrimSpace(input.Comment); comment != "" {
		feedback.Comment = &comment
	}

	if err := s.repository.InsertFeedback(ctx, feedback); err != nil {
		return nil, err
	}

	s.logger.Info("feedback captured",
		zap.Int64("feedback_id", feedback.ID),
		zap.String("customer_id", feedback.CustomerID),
		zap.Int("rating", feedback.Rating))
	return feedback, nil
}

// CaptureForOrder records feedback at the end of the guided order flow. The marker allows
// at most one capture per finalized order.
func (s *FeedbackService) CaptureForOrder(ctx context.Context, orderID string, rating int, comment string) (*domain.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsFinalized() {
		return nil, domain.ErrOrderNotFinalized
	}

	var markerKey string
	if s.marker != nil {
		markerKey = s.marker.FeedbackMarkerKey(orderID)
		exists, err := s.marker.Exists(ctx, markerKey)
		if err != nil {
			s.logger.Warn("failed to check feedback marker", zap.String("order_id", orderID), zap.Error(err))
		}
		if exists {
			return nil, domain.ErrDuplicateFeedback
		}
	}

	feedback, err := s.Capture(ctx, FeedbackInput{
		CustomerID: order.CustomerID,
		StaffID:    order.StaffID,
		Rating:     rating,
		Comment:    comment,
	})
	if err != nil {
		return nil, err
	}

	if s.marker != nil {
		if err := s.marker.SetMarker(ctx, markerKey); err != nil {
			s.logger.Warn("failed to set feedback marker", zap.String("order_id", orderID), zap.Error(err))
		}
	}

	if s.publisher != nil {
		err := s.publisher.Publish(ctx, domain.KafkaMessage{
			Type:       domain.EventFeedbackCaptured,
			OrderID:    orderID,
			CustomerID: feedback.CustomerID,
			StaffID:    feedback.StaffID,
			Date:       feedback.Date.Format(domain.DateLayout),
			Rating:     feedback.Rating,
			Timestamp:  s.now(),
		})
		if err != nil {
			s.logger.Warn("failed to publish feedback_captured", zap.String("order_id", orderID), zap.Error(err))
		}
	}

	return feedback, nil
}

func (s *FeedbackService) List(ctx context.Context) ([]domain.Feedback, error) {
	return s.repository.ListFeedback(ctx)
}
