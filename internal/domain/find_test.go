package domain

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/finds-lab/backend/internal/entity"
	"github.com/finds-lab/backend/internal/model"
	"github.com/finds-lab/backend/internal/repository"
	"github.com/finds-lab/backend/pkg/testutil"
	"github.com/finds-lab/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestFindDomain(t *testing.T) *findDomain {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewFindDomain(
		repository.NewFindRepository(),
		repository.NewAnswerRepository(),
		repository.NewUserRepository(),
		&testutil.MockStorage{},
		node,
	)
}

func multipartFindContext(t *testing.T, userID string, fields map[string]string) context.Context {
	var ctx context.Context
	if userID == "" {
		ctx = testutil.MockContext()
	} else {
		ctx = testutil.MockContextWithUserID(userID)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/finds", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return xcontext.WithHTTPRequest(ctx, req)
}

func Test_findDomain_Create(t *testing.T) {
	ctx := multipartFindContext(t, "", map[string]string{
		"title":       "Rusty horseshoe",
		"description": "Dug this up in the back garden",
		"location":    "Back garden",
		"category":    "tools",
		"authorName":  "Anonymous Digger",
	})
	testutil.CreateFixtureDb(ctx)
	domain := newTestFindDomain(t)

	resp, err := domain.Create(ctx, &model.CreateFindRequest{})
	require.NoError(t, err)
	require.Equal(t, "Rusty horseshoe", resp.Find.Title)
	require.Nil(t, resp.Find.User)
	require.Equal(t, "Anonymous Digger", *resp.Find.AuthorName)
	require.Empty(t, resp.Find.Images)

	var result entity.Find
	tx := xcontext.DB(ctx).Take(&result, "id=?", resp.Find.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, entity.CategoryTools, result.Category)
	require.False(t, result.UserID.Valid)
}

func Test_findDomain_Create_AttachesAccount(t *testing.T) {
	ctx := multipartFindContext(t, testutil.User1.ID, map[string]string{
		"title":       "Blue pottery shard",
		"description": "A painted shard from the old field",
		"location":    "North field",
		"category":    "pottery",
	})
	testutil.CreateFixtureDb(ctx)
	domain := newTestFindDomain(t)

	resp, err := domain.Create(ctx, &model.CreateFindRequest{})
	require.NoError(t, err)
	require.NotNil(t, resp.Find.User)
	require.Equal(t, testutil.User1.ID, resp.Find.User.ID)
}

func Test_findDomain_Create_Validation(t *testing.T) {
	ctx := multipartFindContext(t, "", map[string]string{
		"title":       "ab",
		"description": "A painted shard from the old field",
		"location":    "North field",
		"category":    "pottery",
	})
	domain := newTestFindDomain(t)

	_, err := domain.Create(ctx, &model.CreateFindRequest{})
	require.EqualError(t, err, "Title is required and must be at least 3 characters")
}

func Test_findDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestFindDomain(t)

	resp, err := domain.GetList(ctx, &model.GetListFindsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Finds, 1)
	require.Equal(t, testutil.Find1.ID, resp.Finds[0].ID)
	require.Equal(t, int64(1), resp.Finds[0].AnswerCount)

	resp, err = domain.GetList(ctx, &model.GetListFindsRequest{Category: "coins"})
	require.NoError(t, err)
	require.Len(t, resp.Finds, 1)

	resp, err = domain.GetList(ctx, &model.GetListFindsRequest{Category: "pottery"})
	require.NoError(t, err)
	require.Empty(t, resp.Finds)

	resp, err = domain.GetList(ctx, &model.GetListFindsRequest{Category: "all"})
	require.NoError(t, err)
	require.Len(t, resp.Finds, 1)
}

func Test_findDomain_Get(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestFindDomain(t)

	resp, err := domain.Get(ctx, &model.GetFindRequest{ID: testutil.Find1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Find1.Title, resp.Find.Title)
	require.Len(t, resp.Answers, 1)
	require.Equal(t, testutil.Answer1.Content, resp.Answers[0].Content)

	_, err = domain.Get(ctx, &model.GetFindRequest{ID: 99999})
	require.EqualError(t, err, "Find not found")
}

func Test_findDomain_Update(t *testing.T) {
	ctx := multipartFindContext(t, testutil.User1.ID, map[string]string{
		"title":       "Old copper coin (updated)",
		"description": "Found this small coin near the river bank",
		"location":    "Riverside park",
		"category":    "coins",
	})
	testutil.CreateFixtureDb(ctx)
	domain := newTestFindDomain(t)

	resp, err := domain.Update(ctx, &model.UpdateFindRequest{ID: testutil.Find1.ID})
	require.NoError(t, err)
	require.Equal(t, "Old copper coin (updated)", resp.Find.Title)
	require.Equal(t, int64(1), resp.Find.AnswerCount)
}

func Test_findDomain_Update_Reassign(t *testing.T) {
	fields := map[string]string{
		"title":       "Old copper coin",
		"description": "Found this small coin near the river bank",
		"location":    "Riverside park",
		"category":    "coins",
		"userId":      testutil.User2.ID,
	}

	// The owner cannot hand the find to someone else.
	ctx := multipartFindContext(t, testutil.User1.ID, fields)
	testutil.CreateFixtureDb(ctx)
	domain := newTestFindDomain(t)

	_, err := domain.Update(ctx, &model.UpdateFindRequest{ID: testutil.Find1.ID})
	require.EqualError(t, err, "Forbidden")

	// A moderator can.
	ctx = multipartFindContext(t, testutil.Moderator1.ID, fields)
	testutil.CreateFixtureDb(ctx)

	resp, err := domain.Update(ctx, &model.UpdateFindRequest{ID: testutil.Find1.ID})
	require.NoError(t, err)
	require.NotNil(t, resp.Find.User)
	require.Equal(t, testutil.User2.ID, resp.Find.User.ID)
}

func Test_findDomain_Delete(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		wantErr string
	}{
		{name: "owner", userID: testutil.User1.ID},
		{name: "moderator", userID: testutil.Moderator1.ID},
		{name: "other user", userID: testutil.User2.ID, wantErr: "Forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContextWithUserID(tt.userID)
			testutil.CreateFixtureDb(ctx)
			domain := newTestFindDomain(t)

			resp, err := domain.Delete(ctx, &model.DeleteFindRequest{ID: testutil.Find1.ID})
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.True(t, resp.Success)

			tx := xcontext.DB(ctx).Take(&entity.Find{}, "id=?", testutil.Find1.ID)
			require.ErrorIs(t, tx.Error, gorm.ErrRecordNotFound)

			// Answers go with the find.
			tx = xcontext.DB(ctx).Take(&entity.Answer{}, "find_id=?", testutil.Find1.ID)
			require.ErrorIs(t, tx.Error, gorm.ErrRecordNotFound)
		})
	}
}
