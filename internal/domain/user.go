package domain

import "time"

type User struct {
	ID          uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string     `json:"name" gorm:"not null"`
	Email       string     `json:"email" gorm:"uniqueIndex;not null"`
	Password    string     `json:"-" gorm:"not null"`
	PhoneNumber *string    `json:"phone_number"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	LastLogin   *time.Time `json:"last_login"`
}

// PublicUser is what the login response exposes.
type PublicUser struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
