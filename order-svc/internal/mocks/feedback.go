package mocks

import (
	"context"

	"restorify/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type FeedbackRepository struct {
	mock.Mock
}

func (_m *FeedbackRepository) InsertFeedback(ctx context.Context, feedback *domain.Feedback) error {
	ret := _m.Called(ctx, feedback)
	return ret.Error(0)
}

func (_m *FeedbackRepository) ListFeedback(ctx context.Context) ([]domain.Feedback, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Feedback
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Feedback)
	}
	return r0, ret.Error(1)
}

func NewFeedbackRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *FeedbackRepository {
	m := &FeedbackRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type FeedbackMarker struct {
	mock.Mock
}

func (_m *FeedbackMarker) FeedbackMarkerKey(orderID string) string {
	ret := _m.Called(orderID)
	return ret.String(0)
}

func (_m *FeedbackMarker) Exists(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

func (_m *FeedbackMarker) SetMarker(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

func NewFeedbackMarker(t interface {
	mock.TestingT
	Cleanup(func())
}) *FeedbackMarker {
	m := &FeedbackMarker{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
