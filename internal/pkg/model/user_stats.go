package model

// UserStats counts cumulative actions, not current holdings. Losing custody
// of a character never decrements either counter.
type UserStats struct {
	Id             uint64 `json:"id" gorm:"primaryKey"`
	UserId         uint64 `json:"userId" gorm:"uniqueIndex"`
	CapturedCount  uint64 `json:"capturedCount"`
	ExchangedCount uint64 `json:"exchangedCount"`
}

func (UserStats) TableName() string {
	return "user_stats"
}
