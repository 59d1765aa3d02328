package domain

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/finds-lab/backend/internal/common"
	"github.com/finds-lab/backend/internal/entity"
	"github.com/finds-lab/backend/internal/model"
	"github.com/finds-lab/backend/internal/repository"
	"github.com/finds-lab/backend/pkg/crypto"
	"github.com/finds-lab/backend/pkg/errorx"
	"github.com/finds-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type APIKeyDomain interface {
	GetList(context.Context, *model.GetListAPIKeysRequest) (*model.GetListAPIKeysResponse, error)
	Create(context.Context, *model.CreateAPIKeyRequest) (*model.CreateAPIKeyResponse, error)
	Toggle(context.Context, *model.ToggleAPIKeyRequest) (*model.ToggleAPIKeyResponse, error)
	Delete(context.Context, *model.DeleteAPIKeyRequest) (*model.DeleteAPIKeyResponse, error)
}

type apiKeyDomain struct {
	apiKeyRepo   repository.APIKeyRepository
	roleVerifier *common.GlobalRoleVerifier
}

func NewAPIKeyDomain(
	apiKeyRepo repository.APIKeyRepository,
	userRepo repository.UserRepository,
) *apiKeyDomain {
	return &apiKeyDomain{
		apiKeyRepo:   apiKeyRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *apiKeyDomain) GetList(
	ctx context.Context, req *model.GetListAPIKeysRequest,
) (*model.GetListAPIKeysResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleModerator); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Forbidden")
	}

	keys, err := d.apiKeyRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get api keys: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListAPIKeysResponse{Keys: []model.APIKey{}}
	for i := range keys {
		resp.Keys = append(resp.Keys, convertAPIKey(&keys[i]))
	}

	return resp, nil
}

func (d *apiKeyDomain) Create(
	ctx context.Context, req *model.CreateAPIKeyRequest,
) (*model.CreateAPIKeyResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleModerator); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Forbidden")
	}

	if utf8.RuneCountInString(req.Name) < 2 {
		return nil, errorx.New(errorx.BadRequest, "Name is required and must be at least 2 characters")
	}

	key, err := crypto.GenerateAPIKey()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate api key: %v", err)
		return nil, errorx.Unknown
	}

	apiKey := &entity.APIKey{
		Base:      entity.Base{ID: uuid.NewString()},
		Key:       key,
		Name:      req.Name,
		IsActive:  true,
		CreatedBy: xcontext.RequestUserID(ctx),
	}

	if err := d.apiKeyRepo.Create(ctx, apiKey); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save api key: %v", err)
		return nil, errorx.Unknown
	}

	// The full secret is returned once; listings only show a masked preview.
	return &model.CreateAPIKeyResponse{
		ID:        apiKey.ID,
		Name:      apiKey.Name,
		Key:       apiKey.Key,
		CreatedAt: apiKey.CreatedAt,
	}, nil
}

func (d *apiKeyDomain) Toggle(
	ctx context.Context, req *model.ToggleAPIKeyRequest,
) (*model.ToggleAPIKeyResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleModerator); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Forbidden")
	}

	if req.IsActive == nil {
		return nil, errorx.New(errorx.BadRequest, "isActive is required")
	}

	if _, err := d.apiKeyRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found api key")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the api key: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.apiKeyRepo.SetActive(ctx, req.ID, *req.IsActive); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update the api key: %v", err)
		return nil, errorx.Unknown
	}

	apiKey, err := d.apiKeyRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the api key: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ToggleAPIKeyResponse{
		ID:       apiKey.ID,
		Name:     apiKey.Name,
		IsActive: apiKey.IsActive,
	}, nil
}

func (d *apiKeyDomain) Delete(
	ctx context.Context, req *model.DeleteAPIKeyRequest,
) (*model.DeleteAPIKeyResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleModerator); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Forbidden")
	}

	if _, err := d.apiKeyRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found api key")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the api key: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.apiKeyRepo.DeleteByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the api key: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteAPIKeyResponse{Success: true}, nil
}
