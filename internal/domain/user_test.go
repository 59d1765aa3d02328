package domain

import (
	"testing"

	"github.com/finds-lab/backend/internal/model"
	"github.com/finds-lab/backend/internal/repository"
	"github.com/finds-lab/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func Test_userDomain_GetMe(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := NewUserDomain(repository.NewUserRepository())

	resp, err := domain.GetMe(ctx, &model.GetUserRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.User.ID)
	require.Equal(t, testutil.User1.Email, resp.User.Email)
	require.Equal(t, "user", resp.Role)
}

func Test_userDomain_GetList(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Moderator1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := NewUserDomain(repository.NewUserRepository())

	resp, err := domain.GetList(ctx, &model.GetListUserRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Users, 3)
}

func Test_userDomain_GetList_NotModerator(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := NewUserDomain(repository.NewUserRepository())

	_, err := domain.GetList(ctx, &model.GetListUserRequest{})
	require.EqualError(t, err, "Forbidden")
}
