package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"restorify/order-svc/internal/domain"
	"restorify/order-svc/internal/service"
	"restorify/order-svc/internal/storage"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type workflowTestContext struct {
	store       *storage.MemoryStore
	orders      *service.OrderService
	feedback    *service.FeedbackService
	reservation *domain.Reservation
	order       *domain.Order
	err         error
}

func (c *workflowTestContext) reset() {
	logger := zap.NewNop()
	c.store = storage.NewMemoryStore()
	engine := service.NewReservationEngine(c.store, c.store, logger)
	c.orders = service.NewOrderService(c.store, c.store, c.store, engine, nil, nil, logger)
	c.feedback = service.NewFeedbackService(c.store, c.store, c.store, nil, nil, logger)
	c.reservation = nil
	c.order = nil
	c.err = nil
}

func (c *workflowTestContext) customerAndStaffExist(customerID, staffID string) error {
	c.store.AddCustomer(customerID)
	c.store.AddStaff(staffID)
	return nil
}

func (c *workflowTestContext) ingredientInStock(id, name string, stock int, unit string) error {
	c.store.AddIngredient(domain.Ingredient{ID: id, Name: name, Stock: stock, Unit: unit})
	return nil
}

func (c *workflowTestContext) menuItemPriced(id, name, price string) error {
	amount, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	c.store.AddMenuItem(domain.MenuItem{ID: id, Name: name, Price: amount})
	return nil
}

func (c *workflowTestContext) menuItemNeedsIngredient(menuID string, quantity int, ingredientID string) error {
	c.store.AddBillOfMaterialsEntry(domain.BillOfMaterialsEntry{MenuID: menuID, IngredientID: ingredientID, QuantityPerUnit: quantity})
	return nil
}

func (c *workflowTestContext) anOpenOrder(orderID, customerID, staffID string) error {
	var err error
	c.order, err = c.orders.Open(context.Background(), service.OpenOrderInput{
		ID:         orderID,
		CustomerID: customerID,
		StaffID:    staffID,
	})
	return err
}

func (c *workflowTestContext) iAddToOrder(quantity int, menuID, orderID string) error {
	c.reservation, c.err = c.orders.AddLine(context.Background(), orderID, menuID, quantity)
	return nil
}

func (c *workflowTestContext) iFinalizeOrder(orderID string) error {
	c.order, c.err = c.orders.Finalize(context.Background(), orderID)
	return nil
}

func (c *workflowTestContext) customerRatesStaff(customerID, staffID string, rating int) error {
	_, c.err = c.feedback.Capture(context.Background(), service.FeedbackInput{
		CustomerID: customerID,
		StaffID:    staffID,
		Rating:     rating,
	})
	return nil
}

func (c *workflowTestContext) theLineIsReservedWithPrice(price string) error {
	if c.err != nil {
		return fmt.Errorf("expected reservation but got error: %v", c.err)
	}
	expected, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	if !c.reservation.Line.LinePrice.Equal(expected) {
		return fmt.Errorf("expected line price %s, got %s", expected, c.reservation.Line.LinePrice)
	}
	return nil
}

func (c *workflowTestContext) ingredientHasInStock(id string, stock int) error {
	ingredient, ok := c.store.Ingredient(id)
	if !ok {
		return fmt.Errorf("ingredient %s not seeded", id)
	}
	if ingredient.Stock != stock {
		return fmt.Errorf("expected %s stock %d, got %d", id, stock, ingredient.Stock)
	}
	return nil
}

func (c *workflowTestContext) theReservationFailsFor(name string, required, available int) error {
	var shortage *domain.InsufficientStockError
	if !errors.As(c.err, &shortage) {
		return fmt.Errorf("expected insufficient stock, got %v", c.err)
	}
	if shortage.Name != name || shortage.Required != required || shortage.Available != available {
		return fmt.Errorf("unexpected shortage: %+v", *shortage)
	}
	return nil
}

func (c *workflowTestContext) orderIsFinalizedWithTotal(orderID, total string) error {
	if c.err != nil {
		return fmt.Errorf("expected finalized order but got error: %v", c.err)
	}
	expected, err := decimal.NewFromString(total)
	if err != nil {
		return err
	}
	order, err := c.orders.Get(context.Background(), orderID)
	if err != nil {
		return err
	}
	if !order.IsFinalized() {
		return fmt.Errorf("order %s is %s", orderID, order.Status)
	}
	if !order.Total.Equal(expected) {
		return fmt.Errorf("expected total %s, got %s", expected, order.Total)
	}
	return nil
}

func (c *workflowTestContext) orderIsStillOpen(orderID string) error {
	order, err := c.orders.Get(context.Background(), orderID)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderStatusOpen {
		return fmt.Errorf("order %s is %s", orderID, order.Status)
	}
	return nil
}

func (c *workflowTestContext) theRequestFailsWith(message string) error {
	if c.err == nil {
		return errors.New("expected an error but the request succeeded")
	}
	if !strings.Contains(c.err.Error(), message) {
		return fmt.Errorf("expected error containing %q, got %q", message, c.err.Error())
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &workflowTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^customer "([^"]*)" and staff "([^"]*)" exist$`, tc.customerAndStaffExist)
	ctx.Step(`^ingredient "([^"]*)" named "([^"]*)" with (\d+) (\w+) in stock$`, tc.ingredientInStock)
	ctx.Step(`^menu item "([^"]*)" named "([^"]*)" priced (\d+\.\d+)$`, tc.menuItemPriced)
	ctx.Step(`^menu item "([^"]*)" needs (\d+) of ingredient "([^"]*)" per unit$`, tc.menuItemNeedsIngredient)
	ctx.Step(`^an open order "([^"]*)" for customer "([^"]*)" served by "([^"]*)"$`, tc.anOpenOrder)

	// When steps
	ctx.Step(`^I add (\d+) of menu item "([^"]*)" to order "([^"]*)"$`, tc.iAddToOrder)
	ctx.Step(`^I finalize order "([^"]*)"$`, tc.iFinalizeOrder)
	ctx.Step(`^customer "([^"]*)" rates staff "([^"]*)" with (-?\d+)$`, tc.customerRatesStaff)

	// Then steps
	ctx.Step(`^the line is reserved with price (\d+\.\d+)$`, tc.theLineIsReservedWithPrice)
	ctx.Step(`^ingredient "([^"]*)" has (\d+) in stock$`, tc.ingredientHasInStock)
	ctx.Step(`^the reservation fails for ingredient "([^"]*)" requiring (\d+) with (\d+) available$`, tc.theReservationFailsFor)
	ctx.Step(`^order "([^"]*)" is finalized with total (\d+\.\d+)$`, tc.orderIsFinalizedWithTotal)
	ctx.Step(`^order "([^"]*)" is still open$`, tc.orderIsStillOpen)
	ctx.Step(`^the request fails with "([^"]*)"$`, tc.theRequestFailsWith)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"order_workflow.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
