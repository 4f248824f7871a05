package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"recipehub-backend/entities"
)

func Migrate(db *gorm.DB) error {
	// Parent tables first so the join and membership tables can
	// reference them.
	models := []any{
		&entities.User{},
		&entities.Tag{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.Favorite{},
		&entities.ShoppingCart{},
		&entities.Subscription{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Fatalf("Error migrating %T: %v", model, err)
			return err
		}
	}

	fmt.Println("Database migration complete")
	return nil
}
