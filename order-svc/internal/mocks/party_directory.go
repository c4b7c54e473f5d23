package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type PartyDirectory struct {
	mock.Mock
}

func (_m *PartyDirectory) CustomerExists(ctx context.Context, customerID string) (bool, error) {
	ret := _m.Called(ctx, customerID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *PartyDirectory) StaffExists(ctx context.Context, staffID string) (bool, error) {
	ret := _m.Called(ctx, staffID)
	return ret.Bool(0), ret.Error(1)
}

func NewPartyDirectory(t interface {
	mock.TestingT
	Cleanup(func())
}) *PartyDirectory {
	m := &PartyDirectory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
