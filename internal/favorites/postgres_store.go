package favorites

import (
	"errors"

	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
	"gorm.io/gorm"
)

type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Add(userId uint64, characterId string) (model.Favorite, error) {
	var favorite model.Favorite
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND character_id = ?", userId, characterId).First(&favorite)
		if result.Error == nil {
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		favorite = model.Favorite{UserId: userId, CharacterId: characterId}
		return tx.Create(&favorite).Error
	})
	if err != nil {
		return model.Favorite{}, err
	}
	return favorite, nil
}

func (s *PostgresStore) Remove(userId uint64, characterId string) error {
	result := s.db.Where("user_id = ? AND character_id = ?", userId, characterId).Delete(&model.Favorite{})
	return result.Error
}

func (s *PostgresStore) ListByUser(userId uint64) ([]model.Favorite, error) {
	var favorites []model.Favorite
	result := s.db.Where("user_id = ?", userId).Order("id").Find(&favorites)
	if result.Error != nil {
		return nil, result.Error
	}
	return favorites, nil
}
