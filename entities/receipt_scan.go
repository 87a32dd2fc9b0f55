package entities

import (
	"github.com/google/uuid"
)

type ReceiptScan struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uint      `json:"user_id"`
	ImageURL string    `json:"image_url"`
	Status   string    `json:"status"` // "Pending", "Processed", "Failed", "Completed"
	Results  string    `json:"results,omitempty" gorm:"type:text"`

	User        *User         `gorm:"foreignKey:UserID" json:"-"`
	FridgeItems []*FridgeItem `gorm:"foreignKey:ReceiptScanID" json:"-"`
	Timestamp
}
