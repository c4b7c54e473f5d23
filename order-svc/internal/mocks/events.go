package mocks

import (
	"context"

	"restorify/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type EventPublisher struct {
	mock.Mock
}

func (_m *EventPublisher) Publish(ctx context.Context, msg domain.KafkaMessage) error {
	ret := _m.Called(ctx, msg)
	return ret.Error(0)
}

func NewEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type SalesStore struct {
	mock.Mock
}

func (_m *SalesStore) RecordSale(ctx context.Context, date, menuID string, quantity int) error {
	ret := _m.Called(ctx, date, menuID, quantity)
	return ret.Error(0)
}

func (_m *SalesStore) TopSellers(ctx context.Context, date string, limit int) ([]domain.SalesRank, error) {
	ret := _m.Called(ctx, date, limit)

	var r0 []domain.SalesRank
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.SalesRank)
	}
	return r0, ret.Error(1)
}

func NewSalesStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *SalesStore {
	m := &SalesStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type QRGenerator struct {
	mock.Mock
}

func (_m *QRGenerator) Generate(orderID string) ([]byte, error) {
	ret := _m.Called(orderID)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func NewQRGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
