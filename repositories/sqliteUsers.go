package repositories

import (
	"errors"

	"gorm.io/gorm"

	"draw2photo-server/db"
	"draw2photo-server/entities"
)

type userSqliteRepository struct {
	db db.Database
}

func NewUserSqliteRepository(database db.Database) UserRepository {
	return &userSqliteRepository{db: database}
}

// Create inserts the user in a single atomic statement. A duplicate email
// surfaces as ErrEmailTaken via the translated uniqueness violation.
func (r *userSqliteRepository) Create(user *entities.User) error {
	err := r.db.GetDB().Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

func (r *userSqliteRepository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userSqliteRepository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
