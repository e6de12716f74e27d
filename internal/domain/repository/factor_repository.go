package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// FactorAggregate agregados de cantidad y costo total de los factores de un
// ware por tipo. Base del costeo por promedio ponderado y su valorización.
type FactorAggregate struct {
	Quantity  int64
	TotalCost decimal.Decimal
}

// FactorRepository puerto de persistencia para factores (movimientos).
// El motor de costeo consume secuencias materializadas, nunca carga perezosa.
type FactorRepository interface {
	// Create persiste el factor y asigna ID (monotónico) y CreatedAt.
	Create(factor *entity.Factor) error
	// ListInputsByWare devuelve las entradas del ware ordenadas por
	// (created_at asc, id asc): la fuente del consumo FIFO.
	ListInputsByWare(wareID int64) ([]*entity.Factor, error)
	// UpdateQuantity fija la cantidad restante de un lote FIFO consumido.
	// Debe ejecutarse dentro de la misma transacción que crea la salida.
	UpdateQuantity(factorID, newQuantity int64) error
	// SumByWareAndType agrega cantidad y costo total por tipo de factor.
	SumByWareAndType(wareID int64, factorType string) (FactorAggregate, error)
	// ListByWare devuelve el historial de movimientos del ware, más reciente
	// primero, con paginación.
	ListByWare(wareID int64, limit, offset int) ([]*entity.Factor, error)
}
