package repository

import (
	"context"
	"time"

	"github.com/finds-lab/backend/internal/entity"
	"github.com/finds-lab/backend/pkg/xcontext"
)

type APIKeyRepository interface {
	Create(ctx context.Context, e *entity.APIKey) error
	GetByID(ctx context.Context, id string) (*entity.APIKey, error)
	GetByKey(ctx context.Context, key string) (*entity.APIKey, error)
	GetList(ctx context.Context) ([]entity.APIKey, error)
	UpdateLastUsed(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	DeleteByID(ctx context.Context, id string) error
}

type apiKeyRepository struct{}

func NewAPIKeyRepository() APIKeyRepository {
	return &apiKeyRepository{}
}

func (r *apiKeyRepository) Create(ctx context.Context, e *entity.APIKey) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *apiKeyRepository) GetByID(ctx context.Context, id string) (*entity.APIKey, error) {
	var result entity.APIKey
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *apiKeyRepository) GetByKey(ctx context.Context, key string) (*entity.APIKey, error) {
	var result entity.APIKey
	if err := xcontext.DB(ctx).Take(&result, "`key`=?", key).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *apiKeyRepository) GetList(ctx context.Context) ([]entity.APIKey, error) {
	var result []entity.APIKey
	err := xcontext.DB(ctx).Preload("CreatedByUser").
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *apiKeyRepository) UpdateLastUsed(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Model(&entity.APIKey{}).
		Where("id=?", id).
		Update("last_used_at", time.Now()).Error
}

func (r *apiKeyRepository) SetActive(ctx context.Context, id string, active bool) error {
	return xcontext.DB(ctx).Model(&entity.APIKey{}).
		Where("id=?", id).
		Update("is_active", active).Error
}

func (r *apiKeyRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.APIKey{}, "id=?", id).Error
}
