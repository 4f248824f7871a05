package cart

import (
	"fmt"

	"recipehub-backend/entities"
)

// AggregatedIngredient is one merged shopping-list line: the same
// ingredient across several cart recipes collapses into a single entry
// with the summed amount.
type AggregatedIngredient struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

type ingredientKey struct {
	name string
	unit string
}

// Aggregate folds the line items of every cart recipe into one list
// keyed by ingredient identity (name + unit). Output order is the order
// of first appearance, which is deterministic for a given cart.
func Aggregate(recipes []*entities.Recipe) []AggregatedIngredient {
	totals := make(map[ingredientKey]int)
	var order []ingredientKey

	for _, recipe := range recipes {
		for _, item := range recipe.RecipeIngredients {
			if item.Ingredient == nil {
				continue
			}
			key := ingredientKey{
				name: item.Ingredient.Name,
				unit: item.Ingredient.MeasurementUnit,
			}
			if _, seen := totals[key]; !seen {
				order = append(order, key)
			}
			totals[key] += item.Amount
		}
	}

	result := make([]AggregatedIngredient, 0, len(order))
	for _, key := range order {
		result = append(result, AggregatedIngredient{
			Name:            key.name,
			MeasurementUnit: key.unit,
			Amount:          totals[key],
		})
	}
	return result
}

// FormatLines renders the aggregated list as numbered shopping-list
// lines, one per ingredient.
func FormatLines(ingredients []AggregatedIngredient) []string {
	lines := make([]string, 0, len(ingredients))
	for i, ing := range ingredients {
		lines = append(lines, fmt.Sprintf(
			"%d. %s: %d %s", i+1, ing.Name, ing.Amount, ing.MeasurementUnit,
		))
	}
	return lines
}
