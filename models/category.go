package models

import "time"

// Category represents the categories table
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Reverse relationship omitted so migration creates a single FK; the
	// cascade is declared on Product.Category
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}
