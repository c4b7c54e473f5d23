package mocks

import (
	"context"

	"restorify/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CatalogRepository struct {
	mock.Mock
}

func (_m *CatalogRepository) GetMenuItem(ctx context.Context, menuID string) (*domain.MenuItem, error) {
	ret := _m.Called(ctx, menuID)

	var r0 *domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogRepository) ListBillOfMaterials(ctx context.Context, menuID string) ([]domain.BillOfMaterialsEntry, error) {
	ret := _m.Called(ctx, menuID)

	var r0 []domain.BillOfMaterialsEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.BillOfMaterialsEntry)
	}
	return r0, ret.Error(1)
}

func NewCatalogRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogRepository {
	m := &CatalogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
