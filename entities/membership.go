package entities

import (
	"time"
)

// Membership rows carry no state beyond existence; the composite unique
// indexes are the source of truth for the one-row-per-pair invariants,
// including under concurrent duplicate requests.

type Favorite struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_favorite" json:"user_id"`
	RecipeID  uint      `gorm:"uniqueIndex:idx_user_favorite" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

type ShoppingCart struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_cart" json:"user_id"`
	RecipeID  uint      `gorm:"uniqueIndex:idx_user_cart" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

type Subscription struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_subscription" json:"user_id"`
	AuthorID  uint      `gorm:"uniqueIndex:idx_user_subscription" json:"author_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User `gorm:"foreignKey:UserID"`
	Author *User `gorm:"foreignKey:AuthorID"`
}
