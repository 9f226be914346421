package entity

import "time"

// Category agrupa items por nombre único.
type Category struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryWithCount categoría junto con la cantidad de items que referencia.
type CategoryWithCount struct {
	Category
	ItemCount int64
}
