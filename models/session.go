package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-held half of a login; the cookie only carries ID.
type Session struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index"`
	ExpiresAt int64     `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.Unix() >= s.ExpiresAt
}
