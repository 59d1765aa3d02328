package repository

import (
	"context"

	"github.com/finds-lab/backend/internal/entity"
	"github.com/finds-lab/backend/pkg/xcontext"
)

type GetListFindFilter struct {
	Category string
}

type FindRepository interface {
	Create(ctx context.Context, e *entity.Find) error
	GetByID(ctx context.Context, id int64) (*entity.Find, error)
	GetList(ctx context.Context, filter GetListFindFilter) ([]entity.Find, error)
	Update(ctx context.Context, e *entity.Find) error
	DeleteByID(ctx context.Context, id int64) error
}

type findRepository struct{}

func NewFindRepository() FindRepository {
	return &findRepository{}
}

func (r *findRepository) Create(ctx context.Context, e *entity.Find) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *findRepository) GetByID(ctx context.Context, id int64) (*entity.Find, error) {
	var result entity.Find
	err := xcontext.DB(ctx).Preload("User").Take(&result, "finds.id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *findRepository) GetList(ctx context.Context, filter GetListFindFilter) ([]entity.Find, error) {
	tx := xcontext.DB(ctx).Model(&entity.Find{}).Preload("User")
	if filter.Category != "" && filter.Category != "all" {
		tx = tx.Where("category=?", filter.Category)
	}

	var result []entity.Find
	if err := tx.Order("created_at DESC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *findRepository) Update(ctx context.Context, e *entity.Find) error {
	return xcontext.DB(ctx).Save(e).Error
}

func (r *findRepository) DeleteByID(ctx context.Context, id int64) error {
	return xcontext.DB(ctx).Delete(&entity.Find{}, "id=?", id).Error
}
