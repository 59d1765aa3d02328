package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/finds-lab/backend/internal/common"
	"github.com/finds-lab/backend/internal/entity"
	"github.com/finds-lab/backend/internal/model"
	"github.com/finds-lab/backend/internal/repository"
	"github.com/finds-lab/backend/pkg/errorx"
	"github.com/finds-lab/backend/pkg/storage"
	"github.com/finds-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type BotDomain interface {
	CreateFind(context.Context, *model.CreateBotFindRequest) (*model.CreateBotFindResponse, error)
	GetFind(context.Context, *model.GetBotFindRequest) (*model.GetBotFindResponse, error)
	DeleteFind(context.Context, *model.DeleteBotFindRequest) (*model.DeleteBotFindResponse, error)
}

type botDomain struct {
	findRepo    repository.FindRepository
	answerRepo  repository.AnswerRepository
	userRepo    repository.UserRepository
	fileStorage storage.Storage
	idGenerator *snowflake.Node
}

func NewBotDomain(
	findRepo repository.FindRepository,
	answerRepo repository.AnswerRepository,
	userRepo repository.UserRepository,
	fileStorage storage.Storage,
	idGenerator *snowflake.Node,
) *botDomain {
	return &botDomain{
		findRepo:    findRepo,
		answerRepo:  answerRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
		idGenerator: idGenerator,
	}
}

// CreateFind handles automated submissions. Unlike the interactive path, the
// whole submission fails on the first image that cannot be uploaded.
func (d *botDomain) CreateFind(
	ctx context.Context, req *model.CreateBotFindRequest,
) (*model.CreateBotFindResponse, error) {
	err := validateFindFields(req.Title, req.Description, req.Location, req.Category)
	if err != nil {
		return nil, err
	}

	var userID sql.NullString
	if req.BotUserID != "" {
		user, err := d.userRepo.GetByID(ctx, req.BotUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.BadRequest, "Invalid botUserId - user not found")
			}

			xcontext.Logger(ctx).Errorf("Cannot get the bot user: %v", err)
			return nil, errorx.Unknown
		}

		xcontext.Logger(ctx).Infof("Bot submission attributed to user %s", user.ID)
		userID = sql.NullString{Valid: true, String: user.ID}
	}

	urls, err := common.UploadImages(ctx, d.fileStorage, req.Images)
	if err != nil {
		return nil, err
	}

	find := &entity.Find{
		SnowflakeBase: entity.SnowflakeBase{ID: d.idGenerator.Generate().Int64()},
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		Category:      entity.CategoryType(req.Category),
		Images:        urls,
		UserID:        userID,
	}

	if err := d.findRepo.Create(ctx, find); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the find: %v", err)
		return nil, errorx.Unknown
	}

	created, err := d.findRepo.GetByID(ctx, find.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the created find: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateBotFindResponse{
		Success: true,
		Find:    convertFind(created, 0),
	}, nil
}

func (d *botDomain) GetFind(
	ctx context.Context, req *model.GetBotFindRequest,
) (*model.GetBotFindResponse, error) {
	find, err := d.findRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Find not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the find: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.answerRepo.CountByFindID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count answers: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetBotFindResponse(convertFind(find, count))
	return &resp, nil
}

func (d *botDomain) DeleteFind(
	ctx context.Context, req *model.DeleteBotFindRequest,
) (*model.DeleteBotFindResponse, error) {
	if _, err := d.findRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Find not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the find: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.answerRepo.DeleteByFindID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete answers: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.findRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the find: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteBotFindResponse{
		Success: true,
		Message: fmt.Sprintf("Find %d deleted successfully", req.ID),
	}, nil
}
