// Package memory implementa los puertos de persistencia en memoria del proceso.
// Sirve como backend liviano (STORAGE_BACKEND=memory) y como doble de pruebas.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/restaurant-analytics/internal/application/inventory"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// state datos del almacén. Las transacciones trabajan sobre una copia y la publican al confirmar.
type state struct {
	items      map[string]*entity.InventoryItem
	txs        []*entity.Transaction
	categories map[string]*entity.Category
	users      map[string]*entity.User
}

func newState() *state {
	return &state{
		items:      make(map[string]*entity.InventoryItem),
		categories: make(map[string]*entity.Category),
		users:      make(map[string]*entity.User),
	}
}

// clone copia profunda de ítems y categorías; las transacciones son inmutables una vez agregadas.
func (s *state) clone() *state {
	c := &state{
		items:      make(map[string]*entity.InventoryItem, len(s.items)),
		txs:        append([]*entity.Transaction(nil), s.txs...),
		categories: make(map[string]*entity.Category, len(s.categories)),
		users:      make(map[string]*entity.User, len(s.users)),
	}
	for k, v := range s.items {
		cp := *v
		c.items[k] = &cp
	}
	for k, v := range s.categories {
		cp := *v
		c.categories[k] = &cp
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store almacén en memoria. Un único mutex serializa las transacciones, equivalente al
// bloqueo por fila de PostgreSQL pero a nivel de todo el almacén.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea el almacén con las categorías por defecto.
func NewStore() *Store {
	s := &Store{st: newState()}
	for _, c := range entity.DefaultCategories {
		c := c
		c.ID = uuid.New().String()
		s.st.categories[c.ID] = &c
	}
	return s
}

// Run ejecuta fn con repositorios atados a una copia del estado. Si fn no falla la copia
// reemplaza al estado; si falla se descarta, igual que un Rollback.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	txRepo repository.TransactionRepository,
	categoryRepo repository.CategoryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	inTx := func(fn func(*state) error) error { return fn(work) }
	if err := fn(&itemRepo{with: inTx}, &txRepo{with: inTx}, &categoryRepo{with: inTx}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// locked ejecuta fn sobre el estado vigente con el mutex tomado.
func (s *Store) locked(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// InventoryItems repositorio de ítems fuera de transacción (lecturas y escrituras sueltas).
func (s *Store) InventoryItems() repository.InventoryItemRepository { return &itemRepo{with: s.locked} }

// Transactions repositorio del log de auditoría.
func (s *Store) Transactions() repository.TransactionRepository { return &txRepo{with: s.locked} }

// Categories repositorio de categorías.
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{with: s.locked} }

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{with: s.locked} }
