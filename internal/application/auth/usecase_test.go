package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-analytics/internal/application/auth"
	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/domain"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/infrastructure/memory"
	"github.com/jhoicas/restaurant-analytics/pkg/jwt"
)

const secret = "test-secret"

func newAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.NewStore().Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}, nil)
}

func TestLogin_TokenConRol(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Username: "cocina", Password: "clave", Role: entity.RoleKitchen})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "cocina", Password: "clave"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleKitchen, out.User.Role)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "cocina", claims.Username)
	assert.Equal(t, entity.RoleKitchen, claims.Role)
	assert.Equal(t, out.User.ID, claims.UserID)
}

func TestLogin_Errores(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Username: "gerente", Password: "clave", Role: entity.RoleManager})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "gerente", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "clave"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreateUser_Validaciones(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Username: "x", Password: "y", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Username: "x", Password: "y", Role: entity.RolePurchase})
	require.NoError(t, err)
	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Username: "x", Password: "z", Role: entity.RolePurchase})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestEnsureUsers_Idempotente(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	seed := []dto.CreateUserRequest{
		{Username: "gerente", Password: "a", Role: entity.RoleManager},
		{Username: "compras", Password: "b", Role: entity.RolePurchase},
	}
	require.NoError(t, uc.EnsureUsers(ctx, seed))
	require.NoError(t, uc.EnsureUsers(ctx, seed))

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "compras", Password: "b"})
	assert.NoError(t, err)

	err = uc.EnsureUsers(ctx, []dto.CreateUserRequest{{Username: "z", Password: "c", Role: "chef"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
