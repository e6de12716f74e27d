// Package costing implementa el motor de costeo de inventario (servicio de
// dominio, sin estado): consumo FIFO por lotes, costo promedio ponderado y
// valorización. Todo el dinero es decimal de punto fijo a 2 decimales; nunca
// float.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// MoneyPlaces precisión monetaria del libro (2 decimales).
const MoneyPlaces = 2

// LotConsumption describe el consumo de un lote de entrada por una salida FIFO:
// cuántas unidades se toman y cuántas quedan en el lote después.
type LotConsumption struct {
	FactorID  int64
	Taken     int64
	Remaining int64
	UnitPrice decimal.Decimal
}

// ConsumeFIFO recorre los lotes de entrada en orden de creación (el caller los
// entrega ordenados por created_at asc, desempate por id asc) y arma el plan de
// consumo para una salida de quantity unidades: de cada lote con cantidad
// restante > 0 toma min(faltante, restante) al precio unitario del lote.
//
// Devuelve el plan y el costo total acumulado. Si los lotes se agotan antes de
// cubrir quantity devuelve ErrInsufficientStock y ningún plan: el caller no
// debe persistir nada.
func ConsumeFIFO(lots []*entity.Factor, quantity int64) ([]LotConsumption, decimal.Decimal, error) {
	if quantity <= 0 {
		return nil, decimal.Zero, domain.ErrInvalidInput
	}

	remaining := quantity
	totalCost := decimal.Zero
	var plan []LotConsumption

	for _, lot := range lots {
		if remaining == 0 {
			break
		}
		if lot.Quantity <= 0 {
			continue // lote ya agotado por salidas anteriores
		}
		take := lot.Quantity
		if take > remaining {
			take = remaining
		}
		totalCost = totalCost.Add(lot.PurchasePrice.Mul(decimal.NewFromInt(take)))
		plan = append(plan, LotConsumption{
			FactorID:  lot.ID,
			Taken:     take,
			Remaining: lot.Quantity - take,
			UnitPrice: lot.PurchasePrice,
		})
		remaining -= take
	}

	if remaining > 0 {
		return nil, decimal.Zero, domain.ErrInsufficientStock
	}
	return plan, totalCost, nil
}

// WeightedMeanCost calcula el costo de una salida de quantity unidades bajo
// promedio ponderado, a partir de los agregados netos del historial del ware:
// remainingQty = Σ cantidad entradas − Σ cantidad salidas, remainingValue =
// Σ total_cost entradas − Σ total_cost salidas. Las entradas nunca se mutan
// bajo este método; la disponibilidad se deriva del historial completo.
//
// CostoUnitarioPromedio = remainingValue / remainingQty (división decimal sin
// redondeo intermedio); el costo total se redondea a 2 decimales con redondeo
// bancario (RoundBank) para que los totales sean reproducibles.
func WeightedMeanCost(remainingQty int64, remainingValue decimal.Decimal, quantity int64) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if remainingQty < quantity {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	avg := remainingValue.Div(decimal.NewFromInt(remainingQty))
	return avg.Mul(decimal.NewFromInt(quantity)).RoundBank(MoneyPlaces), nil
}

// FIFOValuation valoriza el stock de un ware FIFO: suma de cantidades
// restantes de los lotes de entrada y de restante × precio de compra. Usa la
// cantidad ya decrementada de cada lote, no el total_cost original (que se
// calculó sobre la cantidad original del lote).
func FIFOValuation(lots []*entity.Factor) (int64, decimal.Decimal) {
	var qty int64
	value := decimal.Zero
	for _, lot := range lots {
		if lot.Quantity <= 0 {
			continue
		}
		qty += lot.Quantity
		value = value.Add(lot.PurchasePrice.Mul(decimal.NewFromInt(lot.Quantity)))
	}
	return qty, value
}

// WeightedMeanValuation valoriza el stock bajo promedio ponderado:
// cantidad = Σ entradas − Σ salidas; valor = Σ total_cost entradas − Σ
// total_cost salidas. Con cantidad ≤ 0 el valor reportado es 0: cualquier
// residuo de redondeo o deriva negativa se recorta a cero.
func WeightedMeanValuation(inputQty, outputQty int64, inputValue, outputValue decimal.Decimal) (int64, decimal.Decimal) {
	qty := inputQty - outputQty
	if qty <= 0 {
		return qty, decimal.Zero
	}
	return qty, inputValue.Sub(outputValue)
}
