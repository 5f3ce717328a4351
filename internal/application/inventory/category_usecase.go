package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/domain"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
)

// CategoryUseCase administración de categorías de inventario.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	txRunner     TxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository, txRunner TxRunner) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, txRunner: txRunner}
}

// List categorías ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// Create alta de categoría. El nombre es obligatorio y único.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	existing, err := uc.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: la categoría %s ya existe", domain.ErrDuplicate, name)
	}
	c := &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Icon:      orDefault(in.Icon, entity.DefaultCategoryIcon),
		CreatedAt: time.Now(),
	}
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

// Update edita nombre e icono. Un cambio de nombre se propaga a los ítems en la misma transacción.
func (uc *CategoryUseCase) Update(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("%w: id obligatorio", domain.ErrInvalidInput)
	}
	var updated *entity.Category
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		_ repository.TransactionRepository,
		categoryRepo repository.CategoryRepository,
	) error {
		c, err := categoryRepo.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, in.ID)
		}
		oldName := c.Name
		if name := strings.TrimSpace(in.Name); name != "" && name != oldName {
			other, err := categoryRepo.GetByName(ctx, name)
			if err != nil {
				return err
			}
			if other != nil {
				return fmt.Errorf("%w: la categoría %s ya existe", domain.ErrDuplicate, name)
			}
			if err := itemRepo.RenameCategory(ctx, oldName, name); err != nil {
				return err
			}
			c.Name = name
		}
		if icon := strings.TrimSpace(in.Icon); icon != "" {
			c.Icon = icon
		}
		if err := categoryRepo.Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(updated)
	return &resp, nil
}

// Delete elimina la categoría si ningún ítem la usa.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id obligatorio", domain.ErrInvalidInput)
	}
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		_ repository.TransactionRepository,
		categoryRepo repository.CategoryRepository,
	) error {
		c, err := categoryRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
		}
		n, err := itemRepo.CountByCategory(ctx, c.Name)
		if err != nil {
			return err
		}
		if n > 0 {
			return &domain.CategoryInUseError{Category: c.Name, Items: n}
		}
		return categoryRepo.Delete(ctx, id)
	})
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Icon: c.Icon, CreatedAt: c.CreatedAt}
}
