package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterInputRequest body para POST /api/inventory/input.
type RegisterInputRequest struct {
	WareID        int64           `json:"ware_id"`
	Quantity      int64           `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
}

// RegisterOutputRequest body para POST /api/inventory/output.
type RegisterOutputRequest struct {
	WareID   int64 `json:"ware_id"`
	Quantity int64 `json:"quantity"`
}

// FactorResponse representación de un factor (movimiento) en respuestas.
// PurchasePrice solo aplica a entradas; en salidas viaja como null.
type FactorResponse struct {
	ID            int64            `json:"factor_id"`
	WareID        int64            `json:"ware_id"`
	Type          string           `json:"type"`
	Quantity      int64            `json:"quantity"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	TotalCost     decimal.Decimal  `json:"total_cost"`
	CreatedAt     time.Time        `json:"created_at"`
}

// FactorListResponse historial de movimientos de un ware (kardex).
type FactorListResponse struct {
	Factors []FactorResponse `json:"factors"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// ValuationResponse valorización puntual del stock de un ware.
type ValuationResponse struct {
	WareID          int64           `json:"ware_id"`
	QuantityInStock int64           `json:"quantity_in_stock"`
	TotalValue      decimal.Decimal `json:"total_inventory_value"`
}
