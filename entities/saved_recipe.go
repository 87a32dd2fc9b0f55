package entities

import (
	"time"
)

// SavedRecipe is an AI suggestion the user chose to keep. Ingredients,
// Instructions and UsesExpiringItems hold the suggestion payload as JSON.
type SavedRecipe struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `json:"user_id"`
	Title             string    `gorm:"not null" json:"title"`
	Description       string    `gorm:"type:text" json:"description"`
	Ingredients       string    `gorm:"type:text" json:"ingredients"`
	Instructions      string    `gorm:"type:text" json:"instructions"`
	UsesExpiringItems string    `gorm:"type:text" json:"uses_expiring_items"`
	SavedAt           time.Time `gorm:"type:timestamp" json:"saved_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
