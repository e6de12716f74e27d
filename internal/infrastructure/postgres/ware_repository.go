package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.WareRepository = (*WareRepo)(nil)

// WareRepo implementación de WareRepository sobre PostgreSQL (usable con pool o tx).
type WareRepo struct {
	q Querier
}

// NewWareRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWareRepository(q Querier) *WareRepo {
	return &WareRepo{q: q}
}

// Create persiste el ware; la BD asigna id (bigserial) y timestamps.
// Devuelve domain.ErrDuplicate si el nombre ya existe (constraint único).
func (r *WareRepo) Create(ware *entity.Ware) error {
	query := `
		INSERT INTO wares (name, cost_method)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query, ware.Name, ware.CostMethod).Scan(
		&ware.ID, &ware.CreatedAt, &ware.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ware: %w", err)
	}
	return nil
}

// GetByID obtiene un ware por ID. Devuelve nil, nil si no existe.
func (r *WareRepo) GetByID(id int64) (*entity.Ware, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el ware y bloquea su fila (SELECT FOR UPDATE).
// Serializa los movimientos concurrentes sobre el mismo ware: dos salidas
// nunca leen el mismo estado de lotes antes de escribir.
func (r *WareRepo) GetForUpdate(id int64) (*entity.Ware, error) {
	return r.get(id, true)
}

func (r *WareRepo) get(id int64, forUpdate bool) (*entity.Ware, error) {
	query := `
		SELECT id, name, cost_method, created_at, updated_at
		FROM wares WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var w entity.Ware
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&w.ID, &w.Name, &w.CostMethod, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ware: %w", err)
	}
	return &w, nil
}

// List lista wares con paginación, más recientes primero.
func (r *WareRepo) List(limit, offset int) ([]*entity.Ware, error) {
	query := `
		SELECT id, name, cost_method, created_at, updated_at
		FROM wares ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list wares: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ware
	for rows.Next() {
		var w entity.Ware
		if err := rows.Scan(&w.ID, &w.Name, &w.CostMethod, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ware: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}
