package dto

import "time"

// CreateWareRequest body para POST /api/wares.
// CostMethod es inmutable después de la creación: "fifo" o "weighted_mean".
type CreateWareRequest struct {
	Name       string `json:"name"`
	CostMethod string `json:"cost_method"`
}

// WareResponse representación de un ware en respuestas.
type WareResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	CostMethod string    `json:"cost_method"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// WareListResponse listado paginado de wares.
type WareListResponse struct {
	Wares  []WareResponse `json:"wares"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
