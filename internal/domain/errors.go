package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// ErrInvalidCostMethod indica un cost_method fuera del enum soportado.
	// No es recuperable por el usuario: la columna tiene CHECK, así que verlo
	// en runtime significa corrupción de datos aguas arriba.
	ErrInvalidCostMethod = errors.New("método de costeo inválido")
)
