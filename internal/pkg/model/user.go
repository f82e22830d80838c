package model

type User struct {
	Id       uint64 `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	// Credential holds the bcrypt hash of the password, never the password itself.
	Credential string `json:"-"`
}

func (User) TableName() string {
	return "villaindex_user"
}
