package repository

import (
	"context"

	"github.com/finds-lab/backend/internal/entity"
	"github.com/finds-lab/backend/pkg/xcontext"
)

type AnswerRepository interface {
	Create(ctx context.Context, e *entity.Answer) error
	GetByID(ctx context.Context, id int64) (*entity.Answer, error)
	GetListByFindID(ctx context.Context, findID int64) ([]entity.Answer, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteByFindID(ctx context.Context, findID int64) error
	CountByFindID(ctx context.Context, findID int64) (int64, error)
	CountByFindIDs(ctx context.Context, findIDs []int64) (map[int64]int64, error)
}

type answerRepository struct{}

func NewAnswerRepository() AnswerRepository {
	return &answerRepository{}
}

func (r *answerRepository) Create(ctx context.Context, e *entity.Answer) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *answerRepository) GetByID(ctx context.Context, id int64) (*entity.Answer, error) {
	var result entity.Answer
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *answerRepository) GetListByFindID(ctx context.Context, findID int64) ([]entity.Answer, error) {
	var result []entity.Answer
	err := xcontext.DB(ctx).Preload("User").
		Where("find_id=?", findID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *answerRepository) DeleteByID(ctx context.Context, id int64) error {
	return xcontext.DB(ctx).Delete(&entity.Answer{}, "id=?", id).Error
}

func (r *answerRepository) DeleteByFindID(ctx context.Context, findID int64) error {
	return xcontext.DB(ctx).Delete(&entity.Answer{}, "find_id=?", findID).Error
}

func (r *answerRepository) CountByFindID(ctx context.Context, findID int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Answer{}).
		Where("find_id=?", findID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *answerRepository) CountByFindIDs(ctx context.Context, findIDs []int64) (map[int64]int64, error) {
	if len(findIDs) == 0 {
		return map[int64]int64{}, nil
	}

	var rows []struct {
		FindID int64
		Count  int64
	}
	err := xcontext.DB(ctx).Model(&entity.Answer{}).
		Select("find_id, count(*) as count").
		Where("find_id IN (?)", findIDs).
		Group("find_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[int64]int64, len(rows))
	for _, row := range rows {
		result[row.FindID] = row.Count
	}

	return result, nil
}
