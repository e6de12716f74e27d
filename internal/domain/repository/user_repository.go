package repository

import "github.com/jhoicas/Costeo-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios (auth).
type UserRepository interface {
	Create(user *entity.User) error
	FindByEmail(email string) (*entity.User, error)
}
