package memory

import (
	"context"

	"github.com/jhoicas/restaurant-analytics/internal/domain"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct {
	with func(func(*state) error) error
}

func (r *userRepo) Create(ctx context.Context, u *entity.User) error {
	return r.with(func(st *state) error {
		for _, other := range st.users {
			if other.Username == u.Username {
				return domain.ErrDuplicate
			}
		}
		cp := *u
		st.users[u.ID] = &cp
		return nil
	})
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.with(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		cp := *u
		out = &cp
		return nil
	})
	return out, err
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.with(func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				cp := *u
				out = &cp
				break
			}
		}
		return nil
	})
	return out, err
}
