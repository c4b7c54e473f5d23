package tests

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"restorify/order-svc/internal/domain"
	"restorify/order-svc/internal/mocks"
	"restorify/order-svc/internal/service"
	"restorify/order-svc/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// newBakeryStore seeds flour, bread (3 kg flour per unit) and water (no ingredients)
// plus an open order O001.
func newBakeryStore(t *testing.T) *storage.MemoryStore {
	t.Helper()
	store := storage.NewMemoryStore()
	store.AddCustomer("C001")
	store.AddStaff("K001")
	store.AddIngredient(domain.Ingredient{ID: "B001", Name: "Flour", Stock: 10, Unit: "kg", UnitPrice: money("1.50")})
	store.AddIngredient(domain.Ingredient{ID: "B002", Name: "Yeast", Stock: 5, Unit: "g", UnitPrice: money("0.20")})
	store.AddMenuItem(domain.MenuItem{ID: "M001", Name: "Bread", Price: money("5.00")})
	store.AddMenuItem(domain.MenuItem{ID: "M002", Name: "Water", Price: money("1.00")})
	store.AddMenuItem(domain.MenuItem{ID: "M003", Name: "Bun", Price: money("2.50")})
	store.AddBillOfMaterialsEntry(domain.BillOfMaterialsEntry{MenuID: "M001", IngredientID: "B001", QuantityPerUnit: 3})
	store.AddBillOfMaterialsEntry(domain.BillOfMaterialsEntry{MenuID: "M003", IngredientID: "B001", QuantityPerUnit: 1})
	store.AddBillOfMaterialsEntry(domain.BillOfMaterialsEntry{MenuID: "M003", IngredientID: "B002", QuantityPerUnit: 2})

	err := store.CreateOrder(context.Background(), &domain.Order{ID: "O001", CustomerID: "C001", StaffID: "K001", Status: domain.OrderStatusOpen})
	require.NoError(t, err)
	return store
}

func stockOf(t *testing.T, store *storage.MemoryStore, id string) int {
	t.Helper()
	ingredient, ok := store.Ingredient(id)
	require.True(t, ok)
	return ingredient.Stock
}

func TestReservationEngine_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("bread decrements flour", func(t *testing.T) {
		store := newBakeryStore(t)
		engine := service.NewReservationEngine(store, store, zap.NewNop())

		reservation, err := engine.Reserve(ctx, "O001", "M001", 2)
		require.NoError(t, err)

		assert.True(t, reservation.Line.LinePrice.Equal(money("10.00")))
		assert.Equal(t, 2, reservation.Line.Quantity)
		assert.Equal(t, "Bread", reservation.Line.MenuName)
		assert.Equal(t, 4, stockOf(t, store, "B001"))
		require.Len(t, reservation.Movements, 1)
		assert.Equal(t, domain.StockMovement{IngredientID: "B001", Name: "Flour", Unit: "kg", Amount: 6, Remaining: 4}, reservation.Movements[0])
	})

	t.Run("shortfall reports the ingredient and leaves stock", func(t *testing.T) {
		store := newBakeryStore(t)
		engine := service.NewReservationEngine(store, store, zap.NewNop())

		_, err := engine.Reserve(ctx, "O001", "M001", 2)
		require.NoError(t, err)

		_, err = engine.Reserve(ctx, "O001", "M001", 4)
		require.ErrorIs(t, err, domain.ErrInsufficientStock)

		var shortage *domain.InsufficientStockError
		require.True(t, errors.As(err, &shortage))
		assert.Equal(t, "B001", shortage.IngredientID)
		assert.Equal(t, "Flour", shortage.Name)
		assert.Equal(t, 12, shortage.Required)
		assert.Equal(t, 4, shortage.Available)
		assert.Equal(t, 4, stockOf(t, store, "B001"))

		order, err := store.GetOrder(ctx, "O001")
		require.NoError(t, err)
		assert.Len(t, order.Lines, 1)
	})

	t.Run("item without ingredients touches no stock", func(t *testing.T) {
		store := newBakeryStore(t)
		engine := service.NewReservationEngine(store, store, zap.NewNop())

		reservation, err := engine.Reserve(ctx, "O001", "M002", 5)
		require.NoError(t, err)
		assert.True(t, reservation.Line.LinePrice.Equal(money("5.00")))
		assert.Empty(t, reservation.Movements)
		assert.Equal(t, 10, stockOf(t, store, "B001"))
		assert.Equal(t, 5, stockOf(t, store, "B002"))
	})

	t.Run("second ingredient short rolls back the first", func(t *testing.T) {
		store := newBakeryStore(t)
		engine := service.NewReservationEngine(store, store, zap.NewNop())

		// 3 buns need 3 kg flour (available) and 6 g yeast (only 5).
		_, err := engine.Reserve(ctx, "O001", "M003", 3)
		var shortage *domain.InsufficientStockError
		require.True(t, errors.As(err, &shortage))
		assert.Equal(t, "B002", shortage.IngredientID)
		assert.Equal(t, 10, stockOf(t, store, "B001"))
		assert.Equal(t, 5, stockOf(t, store, "B002"))
	})

	tests := []struct {
		name          string
		orderID       string
		menuID        string
		quantity      int
		expectedError error
	}{
		{name: "zero quantity", orderID: "O001", menuID: "M001", quantity: 0, expectedError: domain.ErrInvalidQuantity},
		{name: "negative quantity", orderID: "O001", menuID: "M001", quantity: -1, expectedError: domain.ErrInvalidQuantity},
		{name: "missing menu id", orderID: "O001", menuID: "", quantity: 1, expectedError: domain.ErrMissingReference},
		{name: "unknown menu item", orderID: "O001", menuID: "M999", quantity: 1, expectedError: domain.ErrUnknownMenuItem},
		{name: "unknown order", orderID: "O999", menuID: "M001", quantity: 1, expectedError: domain.ErrOrderNotFound},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := newBakeryStore(t)
			engine := service.NewReservationEngine(store, store, zap.NewNop())

			_, err := engine.Reserve(ctx, testCase.orderID, testCase.menuID, testCase.quantity)
			assert.ErrorIs(t, err, testCase.expectedError)
			assert.Equal(t, 10, stockOf(t, store, "B001"))
		})
	}
}

func TestReservationEngine_OversizedQuantityIsRejected(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		menuID   string
		quantity int
	}{
		{name: "product wraps negative", menuID: "M001", quantity: math.MaxInt/2 + 1},
		{name: "product just past max int", menuID: "M001", quantity: math.MaxInt/3 + 1},
		{name: "second ingredient overflows", menuID: "M003", quantity: math.MaxInt/2 + 1},
		{name: "max int", menuID: "M001", quantity: math.MaxInt},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := newBakeryStore(t)
			engine := service.NewReservationEngine(store, store, zap.NewNop())

			reservation, err := engine.Reserve(ctx, "O001", testCase.menuID, testCase.quantity)
			assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
			assert.Nil(t, reservation)
			assert.Equal(t, 10, stockOf(t, store, "B001"))
			assert.Equal(t, 5, stockOf(t, store, "B002"))

			order, err := store.GetOrder(ctx, "O001")
			require.NoError(t, err)
			assert.Empty(t, order.Lines)
		})
	}
}

func TestMemoryStore_DecrementStockRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()

	for _, amount := range []int{0, -1, math.MinInt} {
		store := newBakeryStore(t)
		err := store.WithinTx(ctx, func(tx service.Tx) error {
			return tx.DecrementStock(ctx, "B001", amount)
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "amount %d", amount)
		assert.Equal(t, 10, stockOf(t, store, "B001"))
	}
}

func TestReservationEngine_FinalizedOrderRejectsLines(t *testing.T) {
	ctx := context.Background()
	store := newBakeryStore(t)
	engine := service.NewReservationEngine(store, store, zap.NewNop())

	_, err := engine.Reserve(ctx, "O001", "M002", 1)
	require.NoError(t, err)
	err = store.WithinTx(ctx, func(tx service.Tx) error {
		return tx.FinalizeOrder(ctx, "O001", money("1.00"))
	})
	require.NoError(t, err)

	_, err = engine.Reserve(ctx, "O001", "M001", 1)
	assert.ErrorIs(t, err, domain.ErrOrderFinalized)
	assert.Equal(t, 10, stockOf(t, store, "B001"))
}

func TestReservationEngine_ConcurrentReservationsNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	store := newBakeryStore(t)
	engine := service.NewReservationEngine(store, store, zap.NewNop())

	// Each reservation needs 6 kg of the 10 kg available.
	var (
		wg        sync.WaitGroup
		start     = make(chan struct{})
		successes int
		shortages int
		mu        sync.Mutex
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := engine.Reserve(ctx, "O001", "M001", 2)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrInsufficientStock):
				shortages++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, shortages)
	assert.Equal(t, 4, stockOf(t, store, "B001"))
}

func TestReservationEngine_StockNeverNegative(t *testing.T) {
	ctx := context.Background()
	store := newBakeryStore(t)
	engine := service.NewReservationEngine(store, store, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = engine.Reserve(ctx, "O001", "M001", 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, stockOf(t, store, "B001"))
	order, err := store.GetOrder(ctx, "O001")
	require.NoError(t, err)
	assert.Len(t, order.Lines, 3)
}

func TestReservationEngine_LineInsertFailurePropagates(t *testing.T) {
	ctx := context.Background()
	catalog := mocks.NewCatalogRepository(t)
	uow := mocks.NewUnitOfWork(t)
	tx := mocks.NewTx(t)
	engine := service.NewReservationEngine(catalog, uow, zap.NewNop())

	catalog.On("GetMenuItem", ctx, "M001").Return(&domain.MenuItem{ID: "M001", Name: "Bread", Price: money("5.00")}, nil).Once()
	catalog.On("ListBillOfMaterials", ctx, "M001").Return([]domain.BillOfMaterialsEntry{
		{MenuID: "M001", IngredientID: "B001", QuantityPerUnit: 3},
	}, nil).Once()
	uow.On("WithinTx", ctx, mock.Anything).Return(func(ctx context.Context, fn func(service.Tx) error) error {
		return fn(tx)
	}).Once()
	tx.On("LockOrder", ctx, "O001").Return(&domain.Order{ID: "O001", Status: domain.OrderStatusOpen}, nil).Once()
	tx.On("LockIngredient", ctx, "B001").Return(&domain.Ingredient{ID: "B001", Name: "Flour", Stock: 10, Unit: "kg"}, nil).Once()
	tx.On("DecrementStock", ctx, "B001", 3).Return(nil).Once()
	tx.On("InsertOrderLine", ctx, mock.AnythingOfType("*domain.OrderLine")).Return(errors.New("connection reset")).Once()

	reservation, err := engine.Reserve(ctx, "O001", "M001", 1)
	assert.Nil(t, reservation)
	assert.ErrorContains(t, err, "failed to insert order line")
}

func TestMemoryStore_FailedTransactionLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	store := newBakeryStore(t)

	err := store.WithinTx(ctx, func(tx service.Tx) error {
		if err := tx.DecrementStock(ctx, "B001", 6); err != nil {
			return err
		}
		if err := tx.InsertOrderLine(ctx, &domain.OrderLine{OrderID: "O001", MenuID: "M001", Quantity: 2, LinePrice: money("10.00")}); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	assert.Equal(t, 10, stockOf(t, store, "B001"))
	order, err := store.GetOrder(ctx, "O001")
	require.NoError(t, err)
	assert.Empty(t, order.Lines)
}

func TestMemoryStore_BillOfMaterialsReadIsRepeatable(t *testing.T) {
	ctx := context.Background()
	store := newBakeryStore(t)

	first, err := store.ListBillOfMaterials(ctx, "M003")
	require.NoError(t, err)
	second, err := store.ListBillOfMaterials(ctx, "M003")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "B001", first[0].IngredientID)
	assert.Equal(t, "B002", first[1].IngredientID)
}
