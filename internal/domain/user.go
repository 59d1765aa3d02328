package domain

import (
	"context"
	"errors"

	"github.com/finds-lab/backend/internal/common"
	"github.com/finds-lab/backend/internal/entity"
	"github.com/finds-lab/backend/internal/model"
	"github.com/finds-lab/backend/internal/repository"
	"github.com/finds-lab/backend/pkg/errorx"
	"github.com/finds-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
	GetList(context.Context, *model.GetListUserRequest) (*model.GetListUserResponse, error)
}

type userDomain struct {
	userRepo     repository.UserRepository
	roleVerifier *common.GlobalRoleVerifier
}

func NewUserDomain(userRepo repository.UserRepository) *userDomain {
	return &userDomain{
		userRepo:     userRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserResponse{
		User: *convertUser(user),
		Role: string(user.Role),
	}, nil
}

func (d *userDomain) GetList(
	ctx context.Context, req *model.GetListUserRequest,
) (*model.GetListUserResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleModerator); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Forbidden")
	}

	users, err := d.userRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListUserResponse{Users: []model.User{}}
	for i := range users {
		resp.Users = append(resp.Users, *convertUser(&users[i]))
	}

	return resp, nil
}
