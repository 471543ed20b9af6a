package repositories

import (
	"errors"

	"draw2photo-server/entities"
)

// ErrEmailTaken is returned by Create when the email already has a row.
// The uniqueness constraint in the store is the single source of truth;
// there is no check-then-insert pre-flight.
var ErrEmailTaken = errors.New("email already in use")

type UserRepository interface {
	Create(user *entities.User) error
	GetByEmail(email string) (*entities.User, error)
	GetByID(id uint) (*entities.User, error)
}
