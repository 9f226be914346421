package repository

import "github.com/tu-usuario/inventario-tracker/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id int64) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	// List devuelve todas las categorías con su conteo de items, por nombre ascendente.
	List() ([]*entity.CategoryWithCount, error)
	Delete(id int64) error
}
