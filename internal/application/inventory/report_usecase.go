package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// maxReportWares tope de wares por reporte global.
const maxReportWares = 500

// ValuationReportUseCase genera el reporte PDF de valorización: una línea por
// ware con cantidad y valor de stock, valorizado según el método de cada uno.
type ValuationReportUseCase struct {
	movements *MovementUseCase
	wareRepo  repository.WareRepository
	pdfGen    ValuationPDFGenerator
}

// NewValuationReportUseCase construye el caso de uso.
func NewValuationReportUseCase(movements *MovementUseCase, wareRepo repository.WareRepository, pdfGen ValuationPDFGenerator) *ValuationReportUseCase {
	return &ValuationReportUseCase{movements: movements, wareRepo: wareRepo, pdfGen: pdfGen}
}

// GenerateValuationReport genera el PDF. Con wareID > 0 reporta solo ese ware;
// con wareID 0 reporta todos los wares registrados.
func (uc *ValuationReportUseCase) GenerateValuationReport(ctx context.Context, wareID int64) ([]byte, error) {
	var lines []ValuationLine
	grandTotal := decimal.Zero

	wares, err := uc.resolveWares(wareID)
	if err != nil {
		return nil, err
	}
	for _, w := range wares {
		val, err := uc.movements.Valuate(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, ValuationLine{
			WareID:     w.ID,
			WareName:   w.Name,
			CostMethod: w.CostMethod,
			Quantity:   val.QuantityInStock,
			TotalValue: val.TotalValue,
		})
		grandTotal = grandTotal.Add(val.TotalValue)
	}

	return uc.pdfGen.GenerateValuationPDF(ctx, time.Now(), lines, grandTotal)
}

func (uc *ValuationReportUseCase) resolveWares(wareID int64) ([]*entity.Ware, error) {
	if wareID > 0 {
		ware, err := uc.wareRepo.GetByID(wareID)
		if err != nil {
			return nil, err
		}
		if ware == nil {
			return nil, domain.ErrNotFound
		}
		return []*entity.Ware{ware}, nil
	}
	return uc.wareRepo.List(maxReportWares, 0)
}
