package usecases

import (
	"errors"

	"draw2photo-server/entities"
	"draw2photo-server/repositories"
	"draw2photo-server/services"
)

var (
	// ErrPasswordMismatch means the confirmation field did not match.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrEmailTaken mirrors the repository conflict for callers that only
	// import usecases.
	ErrEmailTaken = repositories.ErrEmailTaken
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// the two cases are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AccountUseCase struct {
	Users repositories.UserRepository
}

func NewAccountUseCase(users repositories.UserRepository) *AccountUseCase {
	return &AccountUseCase{Users: users}
}

// Register validates the confirmation, hashes the password and inserts the
// user. Email uniqueness is enforced by the single atomic insert.
func (uc *AccountUseCase) Register(email, password, confirm string) (*entities.User, error) {
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{Email: email, HashedPassword: hashed}
	if err := uc.Users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login looks the user up by email and verifies the password.
func (uc *AccountUseCase) Login(email, password string) (*entities.User, error) {
	user, err := uc.Users.GetByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !services.VerifyPassword(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
