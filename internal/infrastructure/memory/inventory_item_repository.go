package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/restaurant-analytics/internal/domain"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*itemRepo)(nil)

type itemRepo struct {
	with func(func(*state) error) error
}

func (r *itemRepo) Get(ctx context.Context, itemName string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.with(func(st *state) error {
		if it, ok := st.items[itemName]; ok {
			cp := *it
			out = &cp
		}
		return nil
	})
	return out, err
}

// GetForUpdate dentro de Run el mutex del Store ya serializa el acceso.
func (r *itemRepo) GetForUpdate(ctx context.Context, itemName string) (*entity.InventoryItem, error) {
	return r.Get(ctx, itemName)
}

func (r *itemRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	err := r.with(func(st *state) error {
		out = make([]*entity.InventoryItem, 0, len(st.items))
		for _, it := range st.items {
			cp := *it
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

func (r *itemRepo) Upsert(ctx context.Context, item *entity.InventoryItem) error {
	return r.with(func(st *state) error {
		cp := *item
		st.items[item.ItemName] = &cp
		return nil
	})
}

func (r *itemRepo) Rename(ctx context.Context, oldName, newName string) error {
	return r.with(func(st *state) error {
		it, ok := st.items[oldName]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, oldName)
		}
		if _, taken := st.items[newName]; taken {
			return fmt.Errorf("%w: %s ya existe", domain.ErrDuplicate, newName)
		}
		delete(st.items, oldName)
		it.ItemName = newName
		st.items[newName] = it
		return nil
	})
}

func (r *itemRepo) Delete(ctx context.Context, itemName string) error {
	return r.with(func(st *state) error {
		if _, ok := st.items[itemName]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, itemName)
		}
		delete(st.items, itemName)
		return nil
	})
}

func (r *itemRepo) CountByCategory(ctx context.Context, category string) (int, error) {
	n := 0
	err := r.with(func(st *state) error {
		for _, it := range st.items {
			if it.Category == category {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *itemRepo) RenameCategory(ctx context.Context, oldName, newName string) error {
	return r.with(func(st *state) error {
		for _, it := range st.items {
			if it.Category == oldName {
				it.Category = newName
			}
		}
		return nil
	})
}
