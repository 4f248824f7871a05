package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipehub-backend/entities"
)

func lineItem(name, unit string, amount int) *entities.RecipeIngredient {
	return &entities.RecipeIngredient{
		Amount:     amount,
		Ingredient: &entities.Ingredient{Name: name, MeasurementUnit: unit},
	}
}

func TestAggregateMergesSameIngredient(t *testing.T) {
	recipes := []*entities.Recipe{
		{RecipeIngredients: []*entities.RecipeIngredient{
			lineItem("flour", "g", 200),
		}},
		{RecipeIngredients: []*entities.RecipeIngredient{
			lineItem("flour", "g", 100),
		}},
	}

	got := Aggregate(recipes)
	require.Len(t, got, 1)
	assert.Equal(t, AggregatedIngredient{Name: "flour", MeasurementUnit: "g", Amount: 300}, got[0])
}

func TestAggregateKeepsFirstAppearanceOrder(t *testing.T) {
	recipes := []*entities.Recipe{
		{RecipeIngredients: []*entities.RecipeIngredient{
			lineItem("flour", "g", 200),
			lineItem("sugar", "g", 50),
		}},
		{RecipeIngredients: []*entities.RecipeIngredient{
			lineItem("milk", "ml", 300),
			lineItem("flour", "g", 100),
		}},
	}

	got := Aggregate(recipes)
	require.Len(t, got, 3)
	assert.Equal(t, "flour", got[0].Name)
	assert.Equal(t, 300, got[0].Amount)
	assert.Equal(t, "sugar", got[1].Name)
	assert.Equal(t, "milk", got[2].Name)
}

func TestAggregateDistinguishesUnits(t *testing.T) {
	recipes := []*entities.Recipe{
		{RecipeIngredients: []*entities.RecipeIngredient{
			lineItem("sugar", "g", 50),
			lineItem("sugar", "tbsp", 2),
		}},
	}

	got := Aggregate(recipes)
	require.Len(t, got, 2)
}

func TestAggregateEmptyCart(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]*entities.Recipe{}))
}

func TestFormatLines(t *testing.T) {
	lines := FormatLines([]AggregatedIngredient{
		{Name: "flour", MeasurementUnit: "g", Amount: 300},
		{Name: "milk", MeasurementUnit: "ml", Amount: 250},
	})

	require.Equal(t, []string{
		"1. flour: 300 g",
		"2. milk: 250 ml",
	}, lines)
}

func TestRenderPDFProducesDocument(t *testing.T) {
	data, err := RenderPDF([]string{"1. flour: 300 g"})
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}
