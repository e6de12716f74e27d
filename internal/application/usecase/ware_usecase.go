package usecase

import (
	"strings"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// WareUseCase casos de uso CRUD para wares. Los movimientos y la valorización
// se manejan en el caso de uso de inventario.
type WareUseCase struct {
	repo repository.WareRepository
}

// NewWareUseCase construye el caso de uso.
func NewWareUseCase(repo repository.WareRepository) *WareUseCase {
	return &WareUseCase{repo: repo}
}

// Create crea un ware nuevo. El nombre es único y el método de costeo queda
// fijado de por vida (fifo o weighted_mean).
func (uc *WareUseCase) Create(in dto.CreateWareRequest) (*dto.WareResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidCostMethod(in.CostMethod) {
		return nil, domain.ErrInvalidInput
	}
	ware := &entity.Ware{
		Name:       name,
		CostMethod: in.CostMethod,
	}
	if err := uc.repo.Create(ware); err != nil {
		return nil, err
	}
	return toWareResponse(ware), nil
}

// GetByID obtiene un ware por ID. Devuelve nil si no existe.
func (uc *WareUseCase) GetByID(id int64) (*dto.WareResponse, error) {
	ware, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ware == nil {
		return nil, nil
	}
	return toWareResponse(ware), nil
}

// List lista wares con paginación.
func (uc *WareUseCase) List(limit, offset int) (*dto.WareListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.WareListResponse{Wares: make([]dto.WareResponse, 0, len(list)), Limit: limit, Offset: offset}
	for _, w := range list {
		out.Wares = append(out.Wares, *toWareResponse(w))
	}
	return out, nil
}

func toWareResponse(w *entity.Ware) *dto.WareResponse {
	return &dto.WareResponse{
		ID:         w.ID,
		Name:       w.Name,
		CostMethod: w.CostMethod,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}
