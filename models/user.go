package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"_id"`
	Username  string     `gorm:"not null;uniqueIndex" json:"username"`
	Email     string     `gorm:"not null;uniqueIndex" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

// WithoutPassword returns a copy of u with the password digest cleared.
func (u User) WithoutPassword() *User {
	u.Password = ""
	return &u
}
