package model

import "time"

// Category groups tasks by area (work, health, finance, etc.).
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Name      string `gorm:"index:idx_user_category_name,unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:CategoryID"`
}

// PredefinedCategories is the default set offered to every user.
var PredefinedCategories = []string{"Work", "Personal", "Health", "Finance", "Other"}
