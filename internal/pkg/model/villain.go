package model

// Villain is a custody row: at most one per character, holder reassigned in
// place on exchange, never deleted.
type Villain struct {
	Id          uint64 `json:"id" gorm:"primaryKey"`
	CharacterId string `json:"characterId" gorm:"uniqueIndex"`
	UserId      uint64 `json:"userId"`
}

func (Villain) TableName() string {
	return "villain"
}
