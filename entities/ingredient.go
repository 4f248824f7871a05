package entities

type Ingredient struct {
	ID              uint   `gorm:"primary_key" json:"id"`
	Name            string `gorm:"index;size:128" json:"name"`
	MeasurementUnit string `gorm:"size:64" json:"measurement_unit"`
}
