package entity

import "time"

// User representa un usuario de la API (operador del almacén).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
