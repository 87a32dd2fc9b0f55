package entities

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Password string `json:"-"`
	Image    string `json:"image,omitempty"`
	IsAdmin  bool   `gorm:"default:false" json:"is_admin"`

	Timestamp
}
