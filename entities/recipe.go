package entities

import (
	"time"
)

type Recipe struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	AuthorID    uint      `gorm:"index" json:"author_id"`
	Name        string    `gorm:"index;size:256" json:"name"`
	ImageURL    string    `json:"image"`
	Text        string    `gorm:"type:text" json:"text"`
	CookingTime int       `json:"cooking_time"`
	CreatedAt   time.Time `gorm:"type:timestamp;index" json:"created_at"`

	Author            *User               `gorm:"foreignKey:AuthorID"`
	Tags              []*Tag              `gorm:"many2many:recipe_tags"`
	RecipeIngredients []*RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// RecipeIngredient is the line item joining a recipe to an ingredient
// with a recipe-specific amount. One row per (recipe, ingredient) pair.
type RecipeIngredient struct {
	ID           uint `gorm:"primary_key" json:"id"`
	RecipeID     uint `gorm:"uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint `gorm:"uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       int  `json:"amount"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}
