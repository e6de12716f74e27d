package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de factor (movimiento de inventario).
const (
	FactorTypeInput  = "input"  // entrada: compra o recepción
	FactorTypeOutput = "output" // salida: venta o consumo
)

// Factor representa un movimiento atómico de stock sobre un Ware.
//
// Quantity es la cantidad original del movimiento, salvo para entradas de un
// ware FIFO: ahí se decrementa en el tiempo a medida que salidas posteriores
// consumen el lote (cantidad restante sin consumir). Nunca se muta para
// salidas ni para entradas de wares con promedio ponderado.
//
// TotalCost de una entrada = cantidad original × precio de compra; de una
// salida = costo atribuido por el motor de costeo del ware.
type Factor struct {
	ID            int64
	WareID        int64
	Type          string // ver constantes FactorType*
	Quantity      int64
	PurchasePrice decimal.Decimal // precio unitario; solo entradas (NULL en DB para salidas)
	TotalCost     decimal.Decimal
	CreatedAt     time.Time // define el orden de consumo FIFO (desempate por ID)
}

// IsInput indica si el factor es una entrada de stock.
func (f *Factor) IsInput() bool { return f.Type == FactorTypeInput }
