package custody

import (
	"errors"

	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
	"gorm.io/gorm"
)

// PostgresRegistry leans on the unique index over character_id: Create is a
// conditional insert and Reassign a conditional update, so each is atomic on
// its own row.
type PostgresRegistry struct {
	db *gorm.DB
}

func NewPostgresRegistry(db *gorm.DB) *PostgresRegistry {
	return &PostgresRegistry{db: db}
}

func (r *PostgresRegistry) Find(characterId string) (model.Villain, error) {
	var villain model.Villain
	result := r.db.Where("character_id = ?", characterId).First(&villain)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return model.Villain{}, ErrNotHeld
	}
	if result.Error != nil {
		return model.Villain{}, result.Error
	}
	return villain, nil
}

func (r *PostgresRegistry) Create(characterId string, holderId uint64) (model.Villain, error) {
	var villain model.Villain
	result := r.db.Raw(
		`INSERT INTO villain (character_id, user_id)
		      VALUES (?, ?)
		 ON CONFLICT (character_id) DO NOTHING
		   RETURNING *`, characterId, holderId).
		Scan(&villain)
	if result.Error != nil {
		return model.Villain{}, result.Error
	}
	if result.RowsAffected == 0 {
		return model.Villain{}, ErrAlreadyHeld
	}
	return villain, nil
}

func (r *PostgresRegistry) Reassign(characterId string, newHolderId uint64) (model.Villain, error) {
	var villain model.Villain
	result := r.db.Raw(
		`UPDATE villain
		     SET user_id = ?
		   WHERE character_id = ?
		   RETURNING *`, newHolderId, characterId).
		Scan(&villain)
	if result.Error != nil {
		return model.Villain{}, result.Error
	}
	if result.RowsAffected == 0 {
		return model.Villain{}, ErrNotHeld
	}
	return villain, nil
}

func (r *PostgresRegistry) ListByHolder(userId uint64) ([]model.Villain, error) {
	var held []model.Villain
	result := r.db.Where("user_id = ?", userId).Order("id").Find(&held)
	if result.Error != nil {
		return nil, result.Error
	}
	return held, nil
}
