package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/restaurant-analytics/internal/domain"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
)

var _ repository.CategoryRepository = (*categoryRepo)(nil)

type categoryRepo struct {
	with func(func(*state) error) error
}

func (r *categoryRepo) Create(ctx context.Context, c *entity.Category) error {
	return r.with(func(st *state) error {
		for _, other := range st.categories {
			if other.Name == c.Name {
				return fmt.Errorf("%w: categoría %s", domain.ErrDuplicate, c.Name)
			}
		}
		cp := *c
		st.categories[c.ID] = &cp
		return nil
	})
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.with(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			cp := *c
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *categoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	err := r.with(func(st *state) error {
		for _, c := range st.categories {
			if c.Name == name {
				cp := *c
				out = &cp
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *categoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return r.with(func(st *state) error {
		if _, ok := st.categories[c.ID]; !ok {
			return domain.ErrNotFound
		}
		cp := *c
		st.categories[c.ID] = &cp
		return nil
	})
}

func (r *categoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.with(func(st *state) error {
		for _, c := range st.categories {
			cp := *c
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	return r.with(func(st *state) error {
		if _, ok := st.categories[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.categories, id)
		return nil
	})
}
