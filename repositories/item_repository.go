package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"lost-found/apperrors"
	"lost-found/constants"
	"lost-found/infra"
	"lost-found/models"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemFilter narrows FindAll. Nil fields do not restrict.
type ItemFilter struct {
	Type   *models.ItemType
	Status *models.ItemStatus
	UserID *uuid.UUID
}

type IItemRepository interface {
	Create(ctx context.Context, newItem models.Item) (*models.Item, error)
	FindByID(ctx context.Context, itemID uuid.UUID) (*models.Item, error)
	FindAll(ctx context.Context, filter ItemFilter) ([]models.Item, error)
	FindByType(ctx context.Context, itemType models.ItemType) ([]models.Item, error)
	FindByLocation(ctx context.Context, location string) ([]models.Item, error)
	Search(ctx context.Context, term string) ([]models.Item, error)
	Update(ctx context.Context, itemID uuid.UUID, updates map[string]any) (*models.Item, error)
	MarkResolved(ctx context.Context, itemID uuid.UUID) error
	Delete(ctx context.Context, itemID uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
}

type ItemRepository struct {
	db *infra.Database
}

func NewItemRepository(db *infra.Database) IItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) items(ctx context.Context) (*gorm.DB, error) {
	return r.db.Collection(ctx, constants.CollectionItems)
}

func (r *ItemRepository) Create(ctx context.Context, newItem models.Item) (*models.Item, error) {
	if newItem.Status == "" {
		newItem.Status = models.ItemStatusActive
	}
	if err := newItem.Validate(); err != nil {
		return nil, err
	}
	coll, err := r.items(ctx)
	if err != nil {
		return nil, err
	}
	if newItem.ID == uuid.Nil {
		newItem.ID = uuid.New()
	}
	if err := coll.Create(&newItem).Error; err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	log.Printf("Item created: %s (%s)", newItem.Name, newItem.Type)
	return &newItem, nil
}

func (r *ItemRepository) FindByID(ctx context.Context, itemID uuid.UUID) (*models.Item, error) {
	coll, err := r.items(ctx)
	if err != nil {
		return nil, err
	}
	var item models.Item
	if err := coll.Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return &item, nil
}

func (r *ItemRepository) find(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Item, error) {
	coll, err := r.items(ctx)
	if err != nil {
		return nil, err
	}
	items := []models.Item{}
	if err := scope(coll).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) FindAll(ctx context.Context, filter ItemFilter) ([]models.Item, error) {
	return r.find(ctx, func(tx *gorm.DB) *gorm.DB {
		if filter.Type != nil {
			tx = tx.Where("type = ?", *filter.Type)
		}
		if filter.Status != nil {
			tx = tx.Where("status = ?", *filter.Status)
		}
		if filter.UserID != nil {
			tx = tx.Where("user_id = ?", *filter.UserID)
		}
		return tx
	})
}

func (r *ItemRepository) FindByType(ctx context.Context, itemType models.ItemType) ([]models.Item, error) {
	return r.find(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("type = ? AND status = ?", itemType, models.ItemStatusActive)
	})
}

func (r *ItemRepository) FindByLocation(ctx context.Context, location string) ([]models.Item, error) {
	pattern := containsPattern(location)
	return r.find(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where(`LOWER(location) LIKE ? ESCAPE '\'`, pattern).
			Where("status = ?", models.ItemStatusActive)
	})
}

// Search matches term against name or description, case-insensitively.
func (r *ItemRepository) Search(ctx context.Context, term string) ([]models.Item, error) {
	pattern := containsPattern(term)
	return r.find(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern).
			Where("status = ?", models.ItemStatusActive)
	})
}

func (r *ItemRepository) Update(ctx context.Context, itemID uuid.UUID, updates map[string]any) (*models.Item, error) {
	// 作成者とIDは変更不可
	for _, column := range []string{"id", "user_id", "created_at"} {
		delete(updates, column)
	}

	coll, err := r.items(ctx)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		result := coll.Where("id = ?", itemID).Updates(updates)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update item: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, apperrors.NotFound(constants.ErrItemNotFound)
		}
	}

	updatedItem, err := r.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if updatedItem == nil {
		return nil, apperrors.NotFound(constants.ErrItemNotFound)
	}
	log.Printf("Item updated: %s", itemID)
	return updatedItem, nil
}

func (r *ItemRepository) MarkResolved(ctx context.Context, itemID uuid.UUID) error {
	coll, err := r.items(ctx)
	if err != nil {
		return err
	}
	result := coll.Where("id = ?", itemID).Update("status", models.ItemStatusResolved)
	if result.Error != nil {
		return fmt.Errorf("failed to resolve item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound(constants.ErrItemNotFound)
	}
	log.Printf("Item marked as resolved: %s", itemID)
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, itemID uuid.UUID) error {
	coll, err := r.items(ctx)
	if err != nil {
		return err
	}
	result := coll.Where("id = ?", itemID).Delete(&models.Item{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound(constants.ErrItemNotFound)
	}
	log.Printf("Item deleted: %s", itemID)
	return nil
}

// DeleteAll clears the collection. It is a maintenance helper and has no route.
func (r *ItemRepository) DeleteAll(ctx context.Context) (int64, error) {
	coll, err := r.items(ctx)
	if err != nil {
		return 0, err
	}
	result := coll.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Item{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete items: %w", result.Error)
	}
	log.Printf("Deleted %d items", result.RowsAffected)
	return result.RowsAffected, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
