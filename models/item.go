package models

import (
	"lost-found/apperrors"
	"lost-found/constants"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ItemType string

const (
	ItemTypeLost  ItemType = "lost"
	ItemTypeFound ItemType = "found"
)

func (t ItemType) Valid() bool {
	return t == ItemTypeLost || t == ItemTypeFound
}

// ParseItemType accepts only the two posting kinds.
func ParseItemType(raw string) (ItemType, error) {
	t := ItemType(raw)
	if !t.Valid() {
		return "", apperrors.Validation(constants.ErrInvalidItemType)
	}
	return t, nil
}

type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "active"
	ItemStatusResolved ItemStatus = "resolved"
)

func (s ItemStatus) Valid() bool {
	return s == ItemStatusActive || s == ItemStatusResolved
}

type Item struct {
	ID          uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"_id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `gorm:"not null" json:"description"`
	Location    string     `gorm:"not null;index" json:"location"`
	Type        ItemType   `gorm:"type:varchar(16);not null;index" json:"type"`
	ContactInfo string     `json:"contactInfo"`
	UserID      uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"userId"`
	CreatedAt   time.Time  `gorm:"not null;index" json:"createdAt"`
	Status      ItemStatus `gorm:"type:varchar(16);not null;default:'active';index" json:"status"`
	ImageURL    *string    `json:"imageUrl"`
}

// Validate checks the invariants every stored item must satisfy.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" || strings.TrimSpace(i.Description) == "" ||
		strings.TrimSpace(i.Location) == "" || i.Type == "" || i.UserID == uuid.Nil {
		return apperrors.Validation(constants.ErrMissingItemFields)
	}
	if !i.Type.Valid() {
		return apperrors.Validation(constants.ErrInvalidItemType)
	}
	if !i.Status.Valid() {
		return apperrors.Validation(constants.ErrInvalidItemStatus)
	}
	return nil
}

// IsOwnedBy reports whether userID posted the item.
func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.UserID == userID
}
