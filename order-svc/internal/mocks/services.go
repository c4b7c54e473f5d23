package mocks

import (
	"context"

	"restorify/order-svc/internal/domain"
	"restorify/order-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type ReservationEngineInterface struct {
	mock.Mock
}

func (_m *ReservationEngineInterface) Reserve(ctx context.Context, orderID, menuID string, quantity int) (*domain.Reservation, error) {
	ret := _m.Called(ctx, orderID, menuID, quantity)

	var r0 *domain.Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Reservation)
	}
	return r0, ret.Error(1)
}

func NewReservationEngineInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReservationEngineInterface {
	m := &ReservationEngineInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type OrderServiceInterface struct {
	mock.Mock
}

func (_m *OrderServiceInterface) Open(ctx context.Context, input service.OpenOrderInput) (*domain.Order, error) {
	ret := _m.Called(ctx, input)

	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) AddLine(ctx context.Context, orderID, menuID string, quantity int) (*domain.Reservation, error) {
	ret := _m.Called(ctx, orderID, menuID, quantity)

	var r0 *domain.Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Reservation)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) Finalize(ctx context.Context, orderID string) (*domain.Order, error) {
	ret := _m.Called(ctx, orderID)

	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	ret := _m.Called(ctx, orderID)

	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) List(ctx context.Context) ([]domain.Order, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) QRCode(ctx context.Context, orderID string) ([]byte, error) {
	ret := _m.Called(ctx, orderID)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func NewOrderServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type FeedbackServiceInterface struct {
	mock.Mock
}

func (_m *FeedbackServiceInterface) Capture(ctx context.Context, input service.FeedbackInput) (*domain.Feedback, error) {
	ret := _m.Called(ctx, input)

	var r0 *domain.Feedback
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Feedback)
	}
	return r0, ret.Error(1)
}

func (_m *FeedbackServiceInterface) CaptureForOrder(ctx context.Context, orderID string, rating int, comment string) (*domain.Feedback, error) {
	ret := _m.Called(ctx, orderID, rating, comment)

	var r0 *domain.Feedback
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Feedback)
	}
	return r0, ret.Error(1)
}

func (_m *FeedbackServiceInterface) List(ctx context.Context) ([]domain.Feedback, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Feedback
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Feedback)
	}
	return r0, ret.Error(1)
}

func NewFeedbackServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *FeedbackServiceInterface {
	m := &FeedbackServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type SalesServiceInterface struct {
	mock.Mock
}

func (_m *SalesServiceInterface) TopSellers(ctx context.Context, date string, limit int) ([]domain.SalesRank, error) {
	ret := _m.Called(ctx, date, limit)

	var r0 []domain.SalesRank
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.SalesRank)
	}
	return r0, ret.Error(1)
}

func NewSalesServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *SalesServiceInterface {
	m := &SalesServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
