package entities

type Tag struct {
	ID   uint   `gorm:"primary_key" json:"id"`
	Name string `gorm:"size:32" json:"name"`
	Slug string `gorm:"uniqueIndex;size:32" json:"slug"`
}
