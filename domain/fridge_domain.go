package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddItem     = "fridge item added successfully"
	MessageSuccessDeleteItem  = "fridge item deleted successfully"
	MessageSuccessGetItems    = "fridge items retrieved successfully"
	MessageSuccessEmptyFridge = "fridge emptied successfully"
	MessageSuccessSeedFridge  = "fridge seeded with sample items"

	MessageFailedAddItem     = "failed to add fridge item"
	MessageFailedDeleteItem  = "failed to delete fridge item"
	MessageFailedGetItems    = "failed to retrieve fridge items"
	MessageFailedEmptyFridge = "failed to empty fridge"
	MessageFailedSeedFridge  = "failed to seed fridge"

	ErrItemNotFound       = errors.New("fridge item not found")
	ErrItemNameRequired   = errors.New("item name must not be empty")
	ErrUnknownCategory    = errors.New("unknown food category")
	ErrInvalidExpiryDate  = errors.New("invalid expiry date")
	ErrInvalidQuantity    = errors.New("quantity must not be negative")
	ErrUnauthorizedAccess = errors.New("unauthorized access to fridge item")
)

type (
	AddFridgeItemRequest struct {
		Name       string `json:"name" validate:"required"`
		Category   string `json:"category" validate:"omitempty"`
		Quantity   *int   `json:"quantity" validate:"omitempty,min=0"`
		ExpiryDate string `json:"expiry_date" validate:"omitempty"`
	}

	// FridgeItemResponse is a display-ready item: the raw record plus the
	// expiry/category classification computed by the view model.
	FridgeItemResponse struct {
		ID          uint       `json:"id"`
		Name        string     `json:"name"`
		Category    string     `json:"category,omitempty"`
		Quantity    int        `json:"quantity"`
		ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
		ExpiryState string     `json:"expiry_state"`
		ExpiryLabel string     `json:"expiry_label"`
		CategoryTag string     `json:"category_tag"`
		CreatedAt   time.Time  `json:"created_at"`
	}

	FridgeListResponse struct {
		Items []FridgeItemResponse `json:"items"`
		Total int                  `json:"total"`
	}
)
