package usecase

import (
	"time"

	"github.com/tu-usuario/inventario-tracker/internal/application/dto"
	"github.com/tu-usuario/inventario-tracker/internal/domain"
	"github.com/tu-usuario/inventario-tracker/internal/domain/entity"
	"github.com/tu-usuario/inventario-tracker/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías. El borrado con items asociados queda en
// manos de la FK (los items pasan a categoryId null).
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	itemRepo     repository.ItemRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository, itemRepo repository.ItemRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, itemRepo: itemRepo}
}

// Create crea una categoría. ErrDuplicate si el nombre ya existe.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categoryRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	category := &entity.Category{
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category, nil), nil
}

// List devuelve todas las categorías con su conteo de items.
func (uc *CategoryUseCase) List() ([]dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		count := c.ItemCount
		out = append(out, *toCategoryResponse(&c.Category, &count))
	}
	return out, nil
}

// GetByID devuelve una categoría con sus items. ErrNotFound si no existe.
func (uc *CategoryUseCase) GetByID(id int64) (*dto.CategoryDetailResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.itemRepo.ListByCategory(id)
	if err != nil {
		return nil, err
	}
	detail := &dto.CategoryDetailResponse{
		CategoryResponse: *toCategoryResponse(category, nil),
		Items:            make([]dto.ItemResponse, 0, len(items)),
	}
	for _, it := range items {
		detail.Items = append(detail.Items, *toItemResponse(it, nil))
	}
	return detail, nil
}

// Update modifica nombre o descripción. El cambio de nombre verifica unicidad.
func (uc *CategoryUseCase) Update(id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != category.Name {
		existing, err := uc.categoryRepo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = in.Description
	}
	category.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category, nil), nil
}

// Delete elimina una categoría. ErrNotFound si no existe.
func (uc *CategoryUseCase) Delete(id int64) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.categoryRepo.Delete(id)
}

func toCategoryResponse(c *entity.Category, itemCount *int64) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ItemCount:   itemCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
