// Package memstore implementa los puertos de repositorio en memoria para tests de casos de uso y handlers.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/stock-control/internal/domain"
	"github.com/jhoicas/stock-control/internal/domain/entity"
	"github.com/jhoicas/stock-control/internal/domain/repository"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	products  map[int64]entity.Product
	users     map[int64]entity.User
	movements []entity.Movement
	nextID    int64

	// FailMovementCreate, si no es nil, se devuelve en MovementRepo.Create (para probar rollback).
	FailMovementCreate error
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		products: make(map[int64]entity.Product),
		users:    make(map[int64]entity.User),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// Products repositorio de productos sobre el Store.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Users repositorio de usuarios sobre el Store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Movements repositorio de movimientos sobre el Store.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// TxRunner ejecutor de transacciones sobre el Store.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// MovementCount total de movimientos guardados.
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// UserCount total de usuarios (activos e inactivos).
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ s *Store }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.id()
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate equivale a GetByID: el bloqueo lo da TxRunner serializando las transacciones.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	cur.Name, cur.Price, cur.MinQuantity, cur.UpdatedAt = p.Name, p.Price, p.MinQuantity, p.UpdatedAt
	r.s.products[p.ID] = cur
	return nil
}

func (r *ProductRepo) UpdateQuantity(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	cur.Quantity, cur.UpdatedAt = p.Quantity, p.UpdatedAt
	r.s.products[p.ID] = cur
	return nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	u.ID = r.s.id()
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) ListActive(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0)
	for _, u := range r.s.users {
		if u.Active {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *UserRepo) SetActive(_ context.Context, id int64, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Active = active
	r.s.users[id] = u
	return nil
}

func (r *UserRepo) Deactivate(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || !u.Active {
		return domain.ErrUserNotFound
	}
	if u.IsAdmin {
		others := 0
		for _, o := range r.s.users {
			if o.ID != id && o.Active && o.IsAdmin {
				others++
			}
		}
		if others == 0 {
			return domain.ErrConflict
		}
	}
	u.Active = false
	r.s.users[id] = u
	return nil
}

func (r *UserRepo) CountActiveAdmins(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, u := range r.s.users {
		if u.Active && u.IsAdmin {
			n++
		}
	}
	return n, nil
}

// MovementRepo implementa repository.MovementRepository.
type MovementRepo struct{ s *Store }

var _ repository.MovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailMovementCreate != nil {
		return r.s.FailMovementCreate
	}
	m.ID = r.s.id()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.MovementDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.MovementDetail, 0)
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if f.ProductID != 0 && m.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		out = append(out, &entity.MovementDetail{
			Movement:    m,
			ProductName: r.s.products[m.ProductID].Name,
			UserName:    r.s.users[m.UserID].Name,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *MovementRepo) CountSince(_ context.Context, since time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, m := range r.s.movements {
		if !m.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// TxRunner serializa las transacciones y restaura el estado si fn devuelve error.
type TxRunner struct{ s *Store }

func (t *TxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.MovementRepository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	t.s.mu.Lock()
	products := make(map[int64]entity.Product, len(t.s.products))
	for k, v := range t.s.products {
		products[k] = v
	}
	movements := append([]entity.Movement(nil), t.s.movements...)
	t.s.mu.Unlock()

	if err := fn(t.s.Products(), t.s.Movements()); err != nil {
		t.s.mu.Lock()
		t.s.products = products
		t.s.movements = movements
		t.s.mu.Unlock()
		return err
	}
	return nil
}
