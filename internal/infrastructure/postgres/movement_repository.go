package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, user_id, product_id, type, quantity, unit_cost, total_cost, reference_type, reference_id, reason, created_at, updated_at`

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, user_id, product_id, type, quantity, unit_cost, total_cost, reference_type, reference_id, reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.UserID, movement.ProductID, movement.Type,
		movement.Quantity, movement.UnitCost, movement.TotalCost,
		movement.ReferenceType, nullIfEmpty(movement.ReferenceID), movement.Reason,
		movement.CreatedAt, movement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) GetByID(userID, id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE user_id = $1 AND id = $2`
	m, err := scanMovementRow(r.q.QueryRow(context.Background(), query, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Update reescribe el movimiento. Llamar solo dentro de la tx que ya revirtió
// y reaplicó el efecto sobre el snapshot del producto.
func (r *StockMovementRepo) Update(movement *entity.StockMovement) error {
	query := `
		UPDATE stock_movements
		SET type = $3, quantity = $4, unit_cost = $5, total_cost = $6, reference_type = $7, reference_id = $8, reason = $9, updated_at = $10
		WHERE user_id = $1 AND id = $2`
	cmd, err := r.q.Exec(context.Background(), query,
		movement.UserID, movement.ID, movement.Type, movement.Quantity,
		movement.UnitCost, movement.TotalCost, movement.ReferenceType,
		nullIfEmpty(movement.ReferenceID), movement.Reason, movement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockMovementRepo) Delete(userID, id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_movements WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockMovementRepo) ListByUser(userID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(`WHERE user_id = $1`, []any{userID}, from, to, limit, offset)
}

func (r *StockMovementRepo) ListByProduct(userID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(`WHERE user_id = $1 AND product_id = $2`, []any{userID, productID}, from, to, limit, offset)
}

func (r *StockMovementRepo) list(where string, args []any, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements ` + where
	pos := len(args) + 1
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovementRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovementRow(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var refID *string
	err := row.Scan(
		&m.ID, &m.UserID, &m.ProductID, &m.Type, &m.Quantity, &m.UnitCost,
		&m.TotalCost, &m.ReferenceType, &refID, &m.Reason, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if refID != nil {
		m.ReferenceID = *refID
	}
	return &m, nil
}
