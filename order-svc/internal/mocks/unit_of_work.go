package mocks

import (
	"context"

	"restorify/order-svc/internal/domain"
	"restorify/order-svc/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type UnitOfWork struct {
	mock.Mock
}

// WithinTx accepts a func(context.Context, func(service.Tx) error) error as the return value
// so tests can run the callback against a Tx mock.
func (_m *UnitOfWork) WithinTx(ctx context.Context, fn func(tx service.Tx) error) error {
	ret := _m.Called(ctx, fn)

	if rf, ok := ret.Get(0).(func(context.Context, func(service.Tx) error) error); ok {
		return rf(ctx, fn)
	}
	return ret.Error(0)
}

func NewUnitOfWork(t interface {
	mock.TestingT
	Cleanup(func())
}) *UnitOfWork {
	m := &UnitOfWork{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type Tx struct {
	mock.Mock
}

func (_m *Tx) LockOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	ret := _m.Called(ctx, orderID)

	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *Tx) LockIngredient(ctx context.Context, ingredientID string) (*domain.Ingredient, error) {
	ret := _m.Called(ctx, ingredientID)

	var r0 *domain.Ingredient
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Ingredient)
	}
	return r0, ret.Error(1)
}

func (_m *Tx) DecrementStock(ctx context.Context, ingredientID string, amount int) error {
	ret := _m.Called(ctx, ingredientID, amount)
	return ret.Error(0)
}

func (_m *Tx) InsertOrderLine(ctx context.Context, line *domain.OrderLine) error {
	ret := _m.Called(ctx, line)
	return ret.Error(0)
}

func (_m *Tx) ListOrderLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	ret := _m.Called(ctx, orderID)

	var r0 []domain.OrderLine
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.OrderLine)
	}
	return r0, ret.Error(1)
}

func (_m *Tx) FinalizeOrder(ctx context.Context, orderID string, total decimal.Decimal) error {
	ret := _m.Called(ctx, orderID, total)
	return ret.Error(0)
}

func NewTx(t interface {
	mock.TestingT
	Cleanup(func())
}) *Tx {
	m := &Tx{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
