package identity

import (
	"errors"

	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
	"gorm.io/gorm"
)

type PostgresDirectory struct {
	db *gorm.DB
}

func NewPostgresDirectory(db *gorm.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) Create(user model.User) (model.User, error) {
	err := d.db.Transaction(func(tx *gorm.DB) error {
		var taken int64
		result := tx.Model(&model.User{}).
			Where("email = ? OR username = ?", user.Email, user.Username).
			Count(&taken)
		if result.Error != nil {
			return result.Error
		}
		if taken > 0 {
			return ErrDuplicateUser
		}

		return tx.Create(&user).Error
	})
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (d *PostgresDirectory) FindByEmail(email string) (model.User, error) {
	var user model.User
	result := d.db.Where("email = ?", email).First(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return model.User{}, ErrUserNotFound
	}
	if result.Error != nil {
		return model.User{}, result.Error
	}
	return user, nil
}

func (d *PostgresDirectory) FindById(id uint64) (model.User, error) {
	var user model.User
	result := d.db.First(&user, id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return model.User{}, ErrUserNotFound
	}
	if result.Error != nil {
		return model.User{}, result.Error
	}
	return user, nil
}
