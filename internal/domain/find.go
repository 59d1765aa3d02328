package domain

import (
	"context"
	"database/sql"
	"errors"

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

type FindDomain interface {
	Create(context.Context, *model.CreateFindRequest) (*model.CreateFindResponse, error)
	GetList(context.Context, *model.GetListFindsRequest) (*model.GetListFindsResponse, error)
	Get(context.Context, *model.GetFindRequest) (*model.GetFindResponse, error)
	Update(context.Context, *model.UpdateFindRequest) (*model.UpdateFindResponse, error)
	Delete(context.Context, *model.DeleteFindRequest) (*model.DeleteFindResponse, error)
}

type findDomain struct {
	findRepo     repository.FindRepository
	answerRepo   repository.AnswerRepository
	userRepo     repository.UserRepository
	fileStorage  storage.Storage
	roleVerifier *common.GlobalRoleVerifier
	idGenerator  *snowflake.Node
}

func NewFindDomain(
	findRepo repository.FindRepository,
	answerRepo repository.AnswerRepository,
	userRepo repository.UserRepository,
	fileStorage storage.Storage,
	idGenerator *snowflake.Node,
) *findDomain {
	return &findDomain{
		findRepo:     findRepo,
		answerRepo:   answerRepo,
		userRepo:     userRepo,
		fileStorage:  fileStorage,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo),
		idGenerator:  idGenerator,
	}
}

// Create handles the interactive multipart submission. A failed image upload
// is skipped rather than failing the whole submission.
func (d *findDomain) Create(
	ctx context.Context, req *model.CreateFindRequest,
) (*model.CreateFindResponse, error) {
	httpReq := xcontext.HTTPRequest(ctx)
	if err := httpReq.ParseMultipartForm(xcontext.Configs(ctx).File.MaxMemory); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	title := httpReq.FormValue("title")
	description := httpReq.FormValue("description")
	location := httpReq.FormValue("location")
	category := httpReq.FormValue("category")
	authorName := httpReq.FormValue("authorName")

	if err := validateFindFields(title, description, location, category); err != nil {
		return nil, err
	}

	images := common.ProcessFindImages(ctx, d.fileStorage, "images")

	var userID sql.NullString
	if id := xcontext.RequestUserID(ctx); id != "" {
		userID = sql.NullString{Valid: true, String: id}
	}

	find := &entity.Find{
		SnowflakeBase: entity.SnowflakeBase{ID: d.idGenerator.Generate().Int64()},
		Title:         title,
		Description:   description,
		Location:      location,
		Category:      entity.CategoryType(category),
		Images:        images,
		UserID:        userID,
		AuthorName:    stringToNullString(authorName),
	}

	if err := d.findRepo.Create(ctx, find); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the find: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateFindResponse{Find: convertFind(find, 0)}, nil
}

func (d *findDomain) GetList(
	ctx context.Context, req *model.GetListFindsRequest,
) (*model.GetListFindsResponse, error) {
	finds, err := d.findRepo.GetList(ctx, repository.GetListFindFilter{Category: req.Category})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get finds: %v", err)
		return nil, errorx.Unknown
	}

	findIDs := make([]int64, 0, len(finds))
	for i := range finds {
		findIDs = append(findIDs, finds[i].ID)
	}

	counts, err := d.answerRepo.CountByFindIDs(ctx, findIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count answers: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListFindsResponse{Finds: []model.Find{}}
	for i := range finds {
		resp.Finds = append(resp.Finds, convertFind(&finds[i], counts[finds[i].ID]))
	}

	return resp, nil
}

func (d *findDomain) Get(
	ctx context.Context, req *model.GetFindRequest,
) (*model.GetFindResponse, error) {
	find, err := d.findRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Find not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the find: %v", err)
		return nil, errorx.Unknown
	}

	answers, err := d.answerRepo.GetListByFindID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get answers: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetFindResponse{
		Find:    convertFind(find, int64(len(answers))),
		Answers: []model.Answer{},
	}
	for i := range answers {
		resp.Answers = append(resp.Answers, convertAnswer(&answers[i]))
	}

	return resp, nil
}

// Update rewrites the submission fields. Newly uploaded image files are
// appended to the existing set, within the per-find cap.
func (d *findDomain) Update(
	ctx context.Context, req *model.UpdateFindRequest,
) (*model.UpdateFindResponse, error) {
	find, err := d.findRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Find not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the find: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.verifyCanModify(ctx, find); err != nil {
		return nil, err
	}

	httpReq := xcontext.HTTPRequest(ctx)
	if err := httpReq.ParseMultipartForm(xcontext.Configs(ctx).File.MaxMemory); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	title := httpReq.FormValue("title")
	description := httpReq.FormValue("description")
	location := httpReq.FormValue("location")
	category := httpReq.FormValue("category")

	if err := validateFindFields(title, description, location, category); err != nil {
		return nil, err
	}

	find.Title = title
	find.Description = description
	find.Location = location
	find.Category = entity.CategoryType(category)

	// Moderators can reattach a find to another account.
	if newOwner := httpReq.FormValue("userId"); newOwner != "" && (!find.UserID.Valid || find.UserID.String != newOwner) {
		if err := d.roleVerifier.Verify(ctx, entity.RoleModerator); err != nil {
			xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
			return nil, errorx.New(errorx.PermissionDenied, "Forbidden")
		}

		if _, err := d.userRepo.GetByID(ctx, newOwner); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.BadRequest, "Invalid userId - user not found")
			}

			xcontext.Logger(ctx).Errorf("Cannot get the new owner: %v", err)
			return nil, errorx.Unknown
		}

		xcontext.Logger(ctx).Infof("Find %d reassigned to user %s by %s",
			find.ID, newOwner, xcontext.RequestUserID(ctx))
		find.UserID = sql.NullString{Valid: true, String: newOwner}
	}

	for _, url := range common.ProcessFindImages(ctx, d.fileStorage, "images") {
		if len(find.Images) >= common.MaxImagesPerFind {
			break
		}
		find.Images = append(find.Images, url)
	}

	// Drop the preloaded association so gorm keeps the possibly reassigned
	// foreign key as-is.
	find.User = entity.User{}

	if err := d.findRepo.Update(ctx, find); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the find: %v", err)
		return nil, errorx.Unknown
	}

	find, err = d.findRepo.GetByID(ctx, find.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the updated find: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.answerRepo.CountByFindID(ctx, find.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count answers: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateFindResponse{Find: convertFind(find, count)}, nil
}

func (d *findDomain) Delete(
	ctx context.Context, req *model.DeleteFindRequest,
) (*model.DeleteFindResponse, error) {
	find, err := d.findRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Find not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the find: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.verifyCanModify(ctx, find); err != nil {
		return nil, err
	}

	if err := d.answerRepo.DeleteByFindID(ctx, find.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete answers: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.findRepo.DeleteByID(ctx, find.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the find: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteFindResponse{Success: true}, nil
}

// verifyCanModify allows the owning user or any moderator.
func (d *findDomain) verifyCanModify(ctx context.Context, find *entity.Find) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if find.UserID.Valid && find.UserID.String == userID {
		return nil
	}

	if err := d.roleVerifier.Verify(ctx, entity.RoleModerator); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return errorx.New(errorx.PermissionDenied, "Forbidden")
	}

	return nil
}
