package services

import (
	"context"
	"lost-found/apperrors"
	"lost-found/constants"
	"lost-found/dto"
	"lost-found/models"
	"lost-found/repositories"
	"strings"
	"time"

	"github.com/google/uuid"
)

type IItemService interface {
	List(ctx context.Context, query dto.ItemQuery) ([]models.Item, error)
	FindByID(ctx context.Context, itemID uuid.UUID) (*models.Item, error)
	Create(ctx context.Context, principal *models.User, input dto.CreateItemInput) (*models.Item, error)
	Update(ctx context.Context, principal *models.User, itemID uuid.UUID, input dto.UpdateItemInput) (*models.Item, error)
	Resolve(ctx context.Context, principal *models.User, itemID uuid.UUID) error
	Delete(ctx context.Context, principal *models.User, itemID uuid.UUID) error
}

type ItemService struct {
	repository repositories.IItemRepository
	now        func() time.Time
}

func NewItemService(repository repositories.IItemRepository) IItemService {
	return &ItemService{repository: repository, now: time.Now}
}

func (s *ItemService) List(ctx context.Context, query dto.ItemQuery) ([]models.Item, error) {
	switch {
	case query.Type != "":
		itemType, err := models.ParseItemType(query.Type)
		if err != nil {
			return nil, err
		}
		return s.repository.FindByType(ctx, itemType)
	case query.Location != "":
		return s.repository.FindByLocation(ctx, query.Location)
	case query.Search != "":
		return s.repository.Search(ctx, query.Search)
	default:
		active := models.ItemStatusActive
		return s.repository.FindAll(ctx, repositories.ItemFilter{Status: &active})
	}
}

func (s *ItemService) FindByID(ctx context.Context, itemID uuid.UUID) (*models.Item, error) {
	item, err := s.repository.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperrors.NotFound(constants.ErrItemNotFound)
	}
	return item, nil
}

func (s *ItemService) Create(ctx context.Context, principal *models.User, input dto.CreateItemInput) (*models.Item, error) {
	newItem := models.Item{
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		Type:        models.ItemType(input.Type),
		ContactInfo: input.ContactInfo,
		UserID:      principal.ID,
		CreatedAt:   s.now().UTC(),
		Status:      models.ItemStatusActive,
	}
	if input.ImageURL != nil && *input.ImageURL != "" {
		newItem.ImageURL = input.ImageURL
	}
	return s.repository.Create(ctx, newItem)
}

// owned loads the item and checks that principal posted it.
func (s *ItemService) owned(ctx context.Context, principal *models.User, itemID uuid.UUID, denied string) (*models.Item, error) {
	item, err := s.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsOwnedBy(principal.ID) {
		return nil, apperrors.Forbidden(denied)
	}
	return item, nil
}

func (s *ItemService) Update(ctx context.Context, principal *models.User, itemID uuid.UUID, input dto.UpdateItemInput) (*models.Item, error) {
	targetItem, err := s.owned(ctx, principal, itemID, constants.ErrNotItemOwnerUpdate)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	for column, value := range map[string]*string{
		"name":        input.Name,
		"description": input.Description,
		"location":    input.Location,
	} {
		if value == nil {
			continue
		}
		if strings.TrimSpace(*value) == "" {
			return nil, apperrors.Validation(constants.ErrBlankItemField)
		}
		updates[column] = *value
	}
	if input.ContactInfo != nil {
		updates["contact_info"] = *input.ContactInfo
	}
	if input.ImageURL != nil {
		if *input.ImageURL == "" {
			updates["image_url"] = nil
		} else {
			updates["image_url"] = *input.ImageURL
		}
	}
	if input.Status != nil {
		status := models.ItemStatus(*input.Status)
		if !status.Valid() {
			return nil, apperrors.Validation(constants.ErrInvalidItemStatus)
		}
		updates["status"] = status
	}

	if len(updates) == 0 {
		return targetItem, nil
	}
	return s.repository.Update(ctx, itemID, updates)
}

func (s *ItemService) Resolve(ctx context.Context, principal *models.User, itemID uuid.UUID) error {
	if _, err := s.owned(ctx, principal, itemID, constants.ErrNotItemOwnerResolve); err != nil {
		return err
	}
	return s.repository.MarkResolved(ctx, itemID)
}

func (s *ItemService) Delete(ctx context.Context, principal *models.User, itemID uuid.UUID) error {
	if _, err := s.owned(ctx, principal, itemID, constants.ErrNotItemOwnerDelete); err != nil {
		return err
	}
	return s.repository.Delete(ctx, itemID)
}
