package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jhoicas/stock-control/internal/domain/entity"
	"github.com/jhoicas/stock-control/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
// Los movimientos solo se insertan; no hay UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento y asigna el ID generado.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (product_id, user_id, type, quantity, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var notes *string
	if m.Notes != "" {
		notes = &m.Notes
	}
	err := r.q.QueryRow(ctx, query,
		m.ProductID, m.UserID, string(m.Type), m.Quantity, notes, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// buildListMovementsQuery arma el SELECT del historial con los filtros presentes.
func buildListMovementsQuery(f repository.MovementFilter) (string, []any, error) {
	b := psql.
		Select(
			"m.id", "m.product_id", "m.user_id", "m.type", "m.quantity", "m.notes", "m.created_at",
			"p.name", "u.name",
		).
		From("movements m").
		Join("products p ON p.id = m.product_id").
		Join("users u ON u.id = m.user_id").
		OrderBy("m.created_at DESC", "m.id DESC")

	if f.ProductID > 0 {
		b = b.Where(sq.Eq{"m.product_id": f.ProductID})
	}
	if f.Type != "" {
		b = b.Where(sq.Eq{"m.type": string(f.Type)})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	return b.ToSql()
}

// List devuelve los movimientos más recientes primero con nombre de producto y usuario.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.MovementDetail, error) {
	query, args, err := buildListMovementsQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build movements query: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.MovementDetail, 0)
	for rows.Next() {
		var (
			d     entity.MovementDetail
			kind  string
			notes pgtype.Text
		)
		if err := rows.Scan(
			&d.ID, &d.ProductID, &d.UserID, &kind, &d.Quantity, &notes, &d.CreatedAt,
			&d.ProductName, &d.UserName,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		d.Type = entity.MovementType(kind)
		d.Notes = notes.String
		list = append(list, &d)
	}
	return list, rows.Err()
}

// CountSince cuenta los movimientos con created_at >= since.
func (r *MovementRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM movements WHERE created_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}
