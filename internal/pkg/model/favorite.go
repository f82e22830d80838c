package model

type Favorite struct {
	Id          uint64 `json:"id" gorm:"primaryKey"`
	UserId      uint64 `json:"userId" gorm:"index:idx_favorite_user_character,unique"`
	CharacterId string `json:"characterId" gorm:"index:idx_favorite_user_character,unique"`
}

func (Favorite) TableName() string {
	return "favorite"
}
