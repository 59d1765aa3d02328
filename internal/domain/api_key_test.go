package domain

import (
	"testing"

	"github.com/finds-lab/backend/internal/entity"
	"github.com/finds-lab/backend/internal/model"
	"github.com/finds-lab/backend/internal/repository"
	"github.com/finds-lab/backend/pkg/testutil"
	"github.com/finds-lab/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAPIKeyDomain() *apiKeyDomain {
	return NewAPIKeyDomain(repository.NewAPIKeyRepository(), repository.NewUserRepository())
}

func Test_apiKeyDomain_GetList(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Moderator1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAPIKeyDomain()

	resp, err := domain.GetList(ctx, &model.GetListAPIKeysRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Keys, 2)

	for _, key := range resp.Keys {
		require.Len(t, key.KeyPreview, 19)
		require.Contains(t, key.KeyPreview, "...")
		require.NotNil(t, key.CreatedBy)
		require.Equal(t, testutil.Moderator1.ID, key.CreatedBy.ID)
	}
}

func Test_apiKeyDomain_GetList_MaskedPreview(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Moderator1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAPIKeyDomain()

	resp, err := domain.GetList(ctx, &model.GetListAPIKeysRequest{})
	require.NoError(t, err)

	previews := map[string]bool{}
	for _, key := range resp.Keys {
		previews[key.KeyPreview] = true
	}
	require.True(t, previews["01234567...89abcdef"])
	require.True(t, previews["deadbeef...deadbeef"])
}

func Test_apiKeyDomain_GetList_ShortKeyIsFullyMasked(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Moderator1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAPIKeyDomain()

	shortKey := &entity.APIKey{
		Base:      entity.Base{ID: "api_key_short"},
		Key:       "tiny-secret",
		Name:      "manually inserted",
		IsActive:  true,
		CreatedBy: testutil.Moderator1.ID,
	}
	require.NoError(t, repository.NewAPIKeyRepository().Create(ctx, shortKey))

	resp, err := domain.GetList(ctx, &model.GetListAPIKeysRequest{})
	require.NoError(t, err)

	for _, key := range resp.Keys {
		require.NotContains(t, key.KeyPreview, "tiny")
		if key.ID == shortKey.ID {
			require.Equal(t, "****", key.KeyPreview)
		}
	}
}

func Test_apiKeyDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Moderator1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAPIKeyDomain()

	resp, err := domain.Create(ctx, &model.CreateAPIKeyRequest{Name: "new bot"})
	require.NoError(t, err)
	require.Equal(t, "new bot", resp.Name)
	require.Len(t, resp.Key, 64)

	var result entity.APIKey
	tx := xcontext.DB(ctx).Take(&result, "id=?", resp.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, resp.Key, result.Key)
	require.True(t, result.IsActive)
	require.Equal(t, testutil.Moderator1.ID, result.CreatedBy)
}

func Test_apiKeyDomain_Create_Invalid(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Moderator1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAPIKeyDomain()

	_, err := domain.Create(ctx, &model.CreateAPIKeyRequest{Name: "x"})
	require.EqualError(t, err, "Name is required and must be at least 2 characters")
}

func Test_apiKeyDomain_ModeratorGate(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAPIKeyDomain()

	_, err := domain.GetList(ctx, &model.GetListAPIKeysRequest{})
	require.EqualError(t, err, "Forbidden")

	_, err = domain.Create(ctx, &model.CreateAPIKeyRequest{Name: "new bot"})
	require.EqualError(t, err, "Forbidden")

	isActive := false
	_, err = domain.Toggle(ctx, &model.ToggleAPIKeyRequest{
		ID: testutil.ApiKey1.ID, IsActive: &isActive,
	})
	require.EqualError(t, err, "Forbidden")

	_, err = domain.Delete(ctx, &model.DeleteAPIKeyRequest{ID: testutil.ApiKey1.ID})
	require.EqualError(t, err, "Forbidden")
}

func Test_apiKeyDomain_Toggle(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Moderator1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAPIKeyDomain()

	isActive := false
	resp, err := domain.Toggle(ctx, &model.ToggleAPIKeyRequest{
		ID: testutil.ApiKey1.ID, IsActive: &isActive,
	})
	require.NoError(t, err)
	require.False(t, resp.IsActive)

	isActive = true
	resp, err = domain.Toggle(ctx, &model.ToggleAPIKeyRequest{
		ID: testutil.ApiKey2.ID, IsActive: &isActive,
	})
	require.NoError(t, err)
	require.True(t, resp.IsActive)

	_, err = domain.Toggle(ctx, &model.ToggleAPIKeyRequest{ID: testutil.ApiKey1.ID})
	require.EqualError(t, err, "isActive is required")
}

func Test_apiKeyDomain_Delete(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Moderator1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAPIKeyDomain()

	resp, err := domain.Delete(ctx, &model.DeleteAPIKeyRequest{ID: testutil.ApiKey2.ID})
	require.NoError(t, err)
	require.True(t, resp.Success)

	tx := xcontext.DB(ctx).Take(&entity.APIKey{}, "id=?", testutil.ApiKey2.ID)
	require.ErrorIs(t, tx.Error, gorm.ErrRecordNotFound)

	_, err = domain.Delete(ctx, &model.DeleteAPIKeyRequest{ID: "missing"})
	require.EqualError(t, err, "Not found api key")
}
