package user

import "time"

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         string    `json:"role" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}
