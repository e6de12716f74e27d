package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.FactorRepository = (*FactorRepo)(nil)

// FactorRepo implementación de FactorRepository sobre PostgreSQL (usable con pool o tx).
type FactorRepo struct {
	q Querier
}

// NewFactorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFactorRepository(q Querier) *FactorRepo {
	return &FactorRepo{q: q}
}

// Create persiste un factor; la BD asigna id (bigserial, monotónico) y created_at.
// purchase_price se guarda NULL para salidas.
func (r *FactorRepo) Create(factor *entity.Factor) error {
	query := `
		INSERT INTO factors (ware_id, type, quantity, purchase_price, total_cost)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	purchasePrice := (*decimal.Decimal)(nil)
	if factor.IsInput() {
		purchasePrice = &factor.PurchasePrice
	}
	err := r.q.QueryRow(context.Background(), query,
		factor.WareID, factor.Type, factor.Quantity, purchasePrice, factor.TotalCost,
	).Scan(&factor.ID, &factor.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert factor: %w", err)
	}
	return nil
}

// ListInputsByWare devuelve las entradas del ware ordenadas por
// (created_at asc, id asc): el orden de consumo FIFO.
func (r *FactorRepo) ListInputsByWare(wareID int64) ([]*entity.Factor, error) {
	query := `
		SELECT id, ware_id, type, quantity, purchase_price, total_cost, created_at
		FROM factors
		WHERE ware_id = $1 AND type = $2
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, wareID, entity.FactorTypeInput)
	if err != nil {
		return nil, fmt.Errorf("list inputs: %w", err)
	}
	defer rows.Close()
	return scanFactors(rows)
}

// UpdateQuantity fija la cantidad restante de un lote FIFO consumido.
func (r *FactorRepo) UpdateQuantity(factorID, newQuantity int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE factors SET quantity = $2 WHERE id = $1`, factorID, newQuantity)
	if err != nil {
		return fmt.Errorf("update factor quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update factor quantity: factor %d no existe", factorID)
	}
	return nil
}

// SumByWareAndType agrega cantidad y costo total de los factores de un ware
// por tipo. Para salidas usa la cantidad original (nunca mutada); para
// entradas de wares weighted_mean la cantidad tampoco se muta.
func (r *FactorRepo) SumByWareAndType(wareID int64, factorType string) (repository.FactorAggregate, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0), COALESCE(SUM(total_cost), 0)
		FROM factors WHERE ware_id = $1 AND type = $2`
	var agg repository.FactorAggregate
	err := r.q.QueryRow(context.Background(), query, wareID, factorType).Scan(
		&agg.Quantity, &agg.TotalCost,
	)
	if err != nil {
		return repository.FactorAggregate{}, fmt.Errorf("sum factors: %w", err)
	}
	return agg, nil
}

// ListByWare devuelve el historial de movimientos del ware, más reciente primero.
func (r *FactorRepo) ListByWare(wareID int64, limit, offset int) ([]*entity.Factor, error) {
	query := `
		SELECT id, ware_id, type, quantity, purchase_price, total_cost, created_at
		FROM factors
		WHERE ware_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, wareID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list factors: %w", err)
	}
	defer rows.Close()
	return scanFactors(rows)
}

// scanFactors materializa las filas; purchase_price NULL (salidas) queda en cero.
func scanFactors(rows pgx.Rows) ([]*entity.Factor, error) {
	var list []*entity.Factor
	for rows.Next() {
		var f entity.Factor
		var purchasePrice *decimal.Decimal
		if err := rows.Scan(&f.ID, &f.WareID, &f.Type, &f.Quantity, &purchasePrice, &f.TotalCost, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan factor: %w", err)
		}
		if purchasePrice != nil {
			f.PurchasePrice = *purchasePrice
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}
