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
	"github.com/finds-lab/backend/pkg/enum"
	"github.com/finds-lab/backend/pkg/errorx"
	"github.com/finds-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AnswerDomain interface {
	Create(context.Context, *model.CreateAnswerRequest) (*model.CreateAnswerResponse, error)
	Delete(context.Context, *model.DeleteAnswerRequest) (*model.DeleteAnswerResponse, error)
}

type answerDomain struct {
	answerRepo   repository.AnswerRepository
	findRepo     repository.FindRepository
	roleVerifier *common.GlobalRoleVerifier
	idGenerator  *snowflake.Node
}

func NewAnswerDomain(
	answerRepo repository.AnswerRepository,
	findRepo repository.FindRepository,
	userRepo repository.UserRepository,
	idGenerator *snowflake.Node,
) *answerDomain {
	return &answerDomain{
		answerRepo:   answerRepo,
		findRepo:     findRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo),
		idGenerator:  idGenerator,
	}
}

func (d *answerDomain) Create(
	ctx context.Context, req *model.CreateAnswerRequest,
) (*model.CreateAnswerResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Content is required")
	}

	verdict := sql.NullString{}
	if req.Verdict != "" {
		if _, err := enum.ToEnum[entity.VerdictType](req.Verdict); err != nil {
			return nil, errorx.New(errorx.BadRequest, "Verdict must be one of: keep, donate, sell, throw")
		}
		verdict = sql.NullString{Valid: true, String: req.Verdict}
	}

	if _, err := d.findRepo.GetByID(ctx, req.FindID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Find not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the find: %v", err)
		return nil, errorx.Unknown
	}

	var userID sql.NullString
	if id := xcontext.RequestUserID(ctx); id != "" {
		userID = sql.NullString{Valid: true, String: id}
		if req.AuthorName != "" {
			xcontext.Logger(ctx).Infof("Answer on find %d posted as %q by %s",
				req.FindID, req.AuthorName, id)
		}
	}

	answer := &entity.Answer{
		SnowflakeBase: entity.SnowflakeBase{ID: d.idGenerator.Generate().Int64()},
		Content:       req.Content,
		Verdict:       verdict,
		FindID:        req.FindID,
		UserID:        userID,
		AuthorName:    stringToNullString(req.AuthorName),
	}

	if err := d.answerRepo.Create(ctx, answer); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the answer: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateAnswerResponse{Answer: convertAnswer(answer)}, nil
}

func (d *answerDomain) Delete(
	ctx context.Context, req *model.DeleteAnswerRequest,
) (*model.DeleteAnswerResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleModerator); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Forbidden")
	}

	if _, err := d.answerRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found answer")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the answer: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.answerRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the answer: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteAnswerResponse{Success: true}, nil
}
