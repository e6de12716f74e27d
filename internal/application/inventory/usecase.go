package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/costing"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// MovementUseCase registra movimientos (entrada/salida) y valoriza el stock de
// un ware según su método de costeo. Cada movimiento corre dentro de una
// transacción que bloquea la fila del ware (SELECT FOR UPDATE), de modo que
// movimientos concurrentes sobre el mismo ware se serializan y dos salidas
// nunca observan el mismo stock previo; wares distintos corren en paralelo.
type MovementUseCase struct {
	txRunner   TxRunner
	wareRepo   repository.WareRepository
	factorRepo repository.FactorRepository
}

// NewMovementUseCase construye el caso de uso. wareRepo y factorRepo se usan
// para lecturas fuera de transacción (valorización, historial).
func NewMovementUseCase(txRunner TxRunner, wareRepo repository.WareRepository, factorRepo repository.FactorRepository) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, wareRepo: wareRepo, factorRepo: factorRepo}
}

// RegisterInput registra una entrada de stock: crea un factor input con
// total_cost = cantidad × precio de compra. Las entradas no verifican stock.
func (uc *MovementUseCase) RegisterInput(ctx context.Context, in dto.RegisterInputRequest) (*dto.FactorResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !in.PurchasePrice.IsPositive() || !in.PurchasePrice.Equal(in.PurchasePrice.Round(costing.MoneyPlaces)) {
		return nil, domain.ErrInvalidInput
	}

	var factor *entity.Factor
	err := uc.txRunner.Run(ctx, func(wareRepo repository.WareRepository, factorRepo repository.FactorRepository) error {
		ware, err := wareRepo.GetForUpdate(in.WareID)
		if err != nil {
			return err
		}
		if ware == nil {
			return domain.ErrNotFound
		}
		if !entity.ValidCostMethod(ware.CostMethod) {
			return domain.ErrInvalidCostMethod
		}
		factor = &entity.Factor{
			WareID:        ware.ID,
			Type:          entity.FactorTypeInput,
			Quantity:      in.Quantity,
			PurchasePrice: in.PurchasePrice,
			TotalCost:     in.PurchasePrice.Mul(decimal.NewFromInt(in.Quantity)),
		}
		return factorRepo.Create(factor)
	})
	if err != nil {
		return nil, err
	}
	return toFactorResponse(factor), nil
}

// RegisterOutput registra una salida de stock costeada según el método del
// ware. Con stock insuficiente devuelve ErrInsufficientStock y no persiste
// nada (la transacción se revierte completa).
func (uc *MovementUseCase) RegisterOutput(ctx context.Context, in dto.RegisterOutputRequest) (*dto.FactorResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var factor *entity.Factor
	err := uc.txRunner.Run(ctx, func(wareRepo repository.WareRepository, factorRepo repository.FactorRepository) error {
		ware, err := wareRepo.GetForUpdate(in.WareID)
		if err != nil {
			return err
		}
		if ware == nil {
			return domain.ErrNotFound
		}

		var totalCost decimal.Decimal
		switch ware.CostMethod {
		case entity.CostMethodFIFO:
			totalCost, err = uc.consumeFIFO(factorRepo, ware.ID, in.Quantity)
		case entity.CostMethodWeightedMean:
			totalCost, err = uc.consumeWeightedMean(factorRepo, ware.ID, in.Quantity)
		default:
			err = domain.ErrInvalidCostMethod
		}
		if err != nil {
			return err
		}

		factor = &entity.Factor{
			WareID:    ware.ID,
			Type:      entity.FactorTypeOutput,
			Quantity:  in.Quantity,
			TotalCost: totalCost,
		}
		return factorRepo.Create(factor)
	})
	if err != nil {
		return nil, err
	}
	return toFactorResponse(factor), nil
}

// consumeFIFO arma el plan de consumo sobre los lotes ordenados por
// (created_at, id) y persiste el decremento de cada lote tocado.
func (uc *MovementUseCase) consumeFIFO(factorRepo repository.FactorRepository, wareID, quantity int64) (decimal.Decimal, error) {
	lots, err := factorRepo.ListInputsByWare(wareID)
	if err != nil {
		return decimal.Zero, err
	}
	plan, totalCost, err := costing.ConsumeFIFO(lots, quantity)
	if err != nil {
		return decimal.Zero, err
	}
	for _, c := range plan {
		if err := factorRepo.UpdateQuantity(c.FactorID, c.Remaining); err != nil {
			return decimal.Zero, err
		}
	}
	return totalCost, nil
}

// consumeWeightedMean costea contra los agregados netos del historial.
// Las entradas no se mutan: el consumo es lógico, derivado en cada consulta.
func (uc *MovementUseCase) consumeWeightedMean(factorRepo repository.FactorRepository, wareID, quantity int64) (decimal.Decimal, error) {
	inputs, err := factorRepo.SumByWareAndType(wareID, entity.FactorTypeInput)
	if err != nil {
		return decimal.Zero, err
	}
	outputs, err := factorRepo.SumByWareAndType(wareID, entity.FactorTypeOutput)
	if err != nil {
		return decimal.Zero, err
	}
	remainingQty := inputs.Quantity - outputs.Quantity
	remainingValue := inputs.TotalCost.Sub(outputs.TotalCost)
	return costing.WeightedMeanCost(remainingQty, remainingValue, quantity)
}

// Valuate calcula cantidad y valor del stock restante del ware.
// FIFO: suma de lotes restantes a su precio de compra. Promedio ponderado:
// agregados netos del historial, con valor recortado a 0 si la cantidad ≤ 0.
func (uc *MovementUseCase) Valuate(ctx context.Context, wareID int64) (*dto.ValuationResponse, error) {
	ware, err := uc.wareRepo.GetByID(wareID)
	if err != nil {
		return nil, err
	}
	if ware == nil {
		return nil, domain.ErrNotFound
	}

	var qty int64
	var value decimal.Decimal
	switch ware.CostMethod {
	case entity.CostMethodFIFO:
		lots, err := uc.factorRepo.ListInputsByWare(wareID)
		if err != nil {
			return nil, err
		}
		qty, value = costing.FIFOValuation(lots)
	case entity.CostMethodWeightedMean:
		inputs, err := uc.factorRepo.SumByWareAndType(wareID, entity.FactorTypeInput)
		if err != nil {
			return nil, err
		}
		outputs, err := uc.factorRepo.SumByWareAndType(wareID, entity.FactorTypeOutput)
		if err != nil {
			return nil, err
		}
		qty, value = costing.WeightedMeanValuation(inputs.Quantity, outputs.Quantity, inputs.TotalCost, outputs.TotalCost)
	default:
		return nil, domain.ErrInvalidCostMethod
	}

	return &dto.ValuationResponse{
		WareID:          wareID,
		QuantityInStock: qty,
		TotalValue:      value.Round(costing.MoneyPlaces),
	}, nil
}

// ListFactors devuelve el historial de movimientos del ware (kardex).
func (uc *MovementUseCase) ListFactors(ctx context.Context, wareID int64, limit, offset int) (*dto.FactorListResponse, error) {
	ware, err := uc.wareRepo.GetByID(wareID)
	if err != nil {
		return nil, err
	}
	if ware == nil {
		return nil, domain.ErrNotFound
	}
	factors, err := uc.factorRepo.ListByWare(wareID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.FactorListResponse{Factors: make([]dto.FactorResponse, 0, len(factors)), Limit: limit, Offset: offset}
	for _, f := range factors {
		out.Factors = append(out.Factors, *toFactorResponse(f))
	}
	return out, nil
}

func toFactorResponse(f *entity.Factor) *dto.FactorResponse {
	if f == nil {
		return nil
	}
	resp := &dto.FactorResponse{
		ID:        f.ID,
		WareID:    f.WareID,
		Type:      f.Type,
		Quantity:  f.Quantity,
		TotalCost: f.TotalCost,
		CreatedAt: f.CreatedAt,
	}
	if f.IsInput() {
		price := f.PurchasePrice
		resp.PurchasePrice = &price
	}
	return resp
}
