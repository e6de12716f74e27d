package entity

import "time"

// Métodos de costeo soportados. Se fijan al crear el ware y no cambian:
// no hay semántica definida para migrar el historial de un método al otro.
const (
	CostMethodFIFO         = "fifo"
	CostMethodWeightedMean = "weighted_mean"
)

// ValidCostMethod indica si el método de costeo pertenece al enum soportado.
func ValidCostMethod(m string) bool {
	return m == CostMethodFIFO || m == CostMethodWeightedMean
}

// Ware representa un producto rastreable del almacén.
// Name es único; CostMethod decide cómo se costean las salidas (FIFO o promedio ponderado).
type Ware struct {
	ID         int64
	Name       string
	CostMethod string // ver constantes CostMethod*
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
