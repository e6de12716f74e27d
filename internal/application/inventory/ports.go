package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de costeo:
// o la salida y todos los decrementos de lotes se confirman juntos, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		wareRepo repository.WareRepository,
		factorRepo repository.FactorRepository,
	) error) error
}

// ValuationLine una línea del reporte de valorización: un ware con su
// cantidad y valor de stock al momento del corte.
type ValuationLine struct {
	WareID     int64
	WareName   string
	CostMethod string
	Quantity   int64
	TotalValue decimal.Decimal
}

// ValuationPDFGenerator genera la representación PDF del reporte de
// valorización de inventario.
type ValuationPDFGenerator interface {
	GenerateValuationPDF(ctx context.Context, generatedAt time.Time, lines []ValuationLine, grandTotal decimal.Decimal) ([]byte, error)
}
