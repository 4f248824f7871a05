package entities

import (
	"time"
)

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

type User struct {
	ID           uint   `gorm:"primary_key" json:"id"`
	Username     string `gorm:"uniqueIndex;size:150" json:"username"`
	Email        string `gorm:"uniqueIndex;size:254" json:"email"`
	FirstName    string `gorm:"size:150" json:"first_name"`
	LastName     string `gorm:"size:150" json:"last_name"`
	PasswordHash string `json:"-"`
	AvatarURL    string `json:"avatar,omitempty"`

	Recipes []*Recipe `gorm:"foreignKey:AuthorID"`
	Timestamp
}
