package entities

import (
	"time"
)

// FridgeItem is a single food or drink record a user owns. Items are only
// ever added and deleted, never edited in place.
type FridgeItem struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"not null" json:"name"`
	Category      *string    `json:"category"`
	Quantity      *int       `json:"quantity"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	AddedByID     uint       `json:"added_by_id"`
	ReceiptScanID *string    `json:"receipt_scan_id,omitempty"`

	AddedBy *User `gorm:"foreignKey:AddedByID" json:"-"`
	Timestamp
}
