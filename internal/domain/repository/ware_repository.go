package repository

import "github.com/jhoicas/Costeo-api/internal/domain/entity"

// WareRepository puerto de persistencia para wares.
type WareRepository interface {
	// Create persiste el ware y asigna ID y timestamps. Debe devolver
	// domain.ErrDuplicate si el nombre ya existe.
	Create(ware *entity.Ware) error
	GetByID(id int64) (*entity.Ware, error)
	// GetForUpdate obtiene el ware bloqueando su fila (SELECT FOR UPDATE)
	// para serializar movimientos concurrentes sobre el mismo ware.
	GetForUpdate(id int64) (*entity.Ware, error)
	List(limit, offset int) ([]*entity.Ware, error)
}
