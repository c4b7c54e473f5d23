package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrMissingReference = errors.New("required reference is missing")

	ErrUnknownMenuItem   = errors.New("menu item not found")
	ErrUnknownCustomer   = errors.New("customer not found")
	ErrUnknownStaff      = errors.New("staff member not found")
	ErrUnknownIngredient = errors.New("ingredient not found")
	ErrOrderNotFound     = errors.New("order not found")

	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateOrderID  = errors.New("order id already exists")
	ErrEmptyOrder        = errors.New("order has no lines")
	ErrOrderFinalized    = errors.New("order is already finalized")
	ErrOrderNotFinalized = errors.New("order is not finalized yet")
	ErrDuplicateFeedback = errors.New("feedback already captured for this order")
)

// InsufficientStockError identifies the first ingredient that could not cover a reservation.
type InsufficientStockError struct {
	IngredientID string `json:"ingredient_id"`
	Name         string `json:"name"`
	Required     int    `json:"required"`
	Available    int    `json:"available"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (%s): required %d, available %d",
		e.Name, e.IngredientID, e.Required, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidRating) ||
		errors.Is(err, ErrMissingReference)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownMenuItem) ||
		errors.Is(err, ErrUnknownCustomer) ||
		errors.Is(err, ErrUnknownStaff) ||
		errors.Is(err, ErrOrderNotFound)
}

// IsConflict reports business-rule violations the caller can resolve with different input.
func IsConflict(err error) bool {
	return errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrDuplicateOrderID) ||
		errors.Is(err, ErrEmptyOrder) ||
		errors.Is(err, ErrOrderFinalized) ||
		errors.Is(err, ErrOrderNotFinalized) ||
		errors.Is(err, ErrDuplicateFeedback)
}
