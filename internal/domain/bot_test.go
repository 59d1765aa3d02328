package domain

import (
	"context"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/finds-lab/backend/internal/common"
	"github.com/finds-lab/backend/internal/entity"
	"github.com/finds-lab/backend/internal/model"
	"github.com/finds-lab/backend/internal/repository"
	"github.com/finds-lab/backend/pkg/storage"
	"github.com/finds-lab/backend/pkg/testutil"
	"github.com/finds-lab/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestBotDomain(t *testing.T, fileStorage storage.Storage) *botDomain {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewBotDomain(
		repository.NewFindRepository(),
		repository.NewAnswerRepository(),
		repository.NewUserRepository(),
		fileStorage,
		node,
	)
}

func Test_botDomain_CreateFind(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	var sources []string
	fileStorage := &testutil.MockStorage{
		UploadSourceFunc: func(_ context.Context, source, _ string) (*storage.UploadResponse, error) {
			sources = append(sources, source)
			return &storage.UploadResponse{Url: "https://files.example.com/uploaded.jpg"}, nil
		},
	}
	domain := newTestBotDomain(t, fileStorage)

	resp, err := domain.CreateFind(ctx, &model.CreateBotFindRequest{
		Title:       "Bronze age axe head",
		Description: "Detector hit in the plowed field",
		Location:    "East field",
		Category:    "tools",
		Images: []string{
			"https://example.com/axe.jpg",
			"/9j/4AAQSkZJRg",
		},
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Nil(t, resp.Find.User)
	require.Len(t, resp.Find.Images, 2)

	// URL passes through untouched, raw base64 is wrapped before upload.
	require.Equal(t, "https://example.com/axe.jpg", sources[0])
	require.Equal(t, "data:image/jpeg;base64,/9j/4AAQSkZJRg", sources[1])

	var result entity.Find
	tx := xcontext.DB(ctx).Take(&result, "id=?", resp.Find.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, entity.CategoryTools, result.Category)
}

func Test_botDomain_CreateFind_BotUser(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestBotDomain(t, &testutil.MockStorage{})

	resp, err := domain.CreateFind(ctx, &model.CreateBotFindRequest{
		Title:       "Bronze age axe head",
		Description: "Detector hit in the plowed field",
		Location:    "East field",
		Category:    "tools",
		BotUserID:   testutil.User1.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Find.User)
	require.Equal(t, testutil.User1.ID, resp.Find.User.ID)

	_, err = domain.CreateFind(ctx, &model.CreateBotFindRequest{
		Title:       "Bronze age axe head",
		Description: "Detector hit in the plowed field",
		Location:    "East field",
		Category:    "tools",
		BotUserID:   "no-such-user",
	})
	require.EqualError(t, err, "Invalid botUserId - user not found")
}

func Test_botDomain_CreateFind_ImageFailures(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	fileStorage := &testutil.MockStorage{}
	domain := newTestBotDomain(t, fileStorage)

	base := model.CreateBotFindRequest{
		Title:       "Bronze age axe head",
		Description: "Detector hit in the plowed field",
		Location:    "East field",
		Category:    "tools",
	}

	tooMany := base
	tooMany.Images = make([]string, 11)
	for i := range tooMany.Images {
		tooMany.Images[i] = "https://example.com/img.jpg"
	}
	_, err := domain.CreateFind(ctx, &tooMany)
	require.EqualError(t, err, "Maximum 10 images allowed")

	oversized := base
	oversized.Images = []string{"/9j/" + strings.Repeat("A", common.MaxImageBytes*4/3)}
	_, err = domain.CreateFind(ctx, &oversized)
	require.EqualError(t, err, "Image 1 exceeds 10MB limit")

	// The mock storage rejects every upload, so the submission aborts and
	// nothing is persisted.
	failing := base
	failing.Images = []string{"https://example.com/img.jpg"}
	_, err = domain.CreateFind(ctx, &failing)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Failed to upload image 1")

	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.Find{}).
		Where("title=?", base.Title).Count(&count).Error)
	require.Zero(t, count)
}

func Test_botDomain_GetFind(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestBotDomain(t, &testutil.MockStorage{})

	resp, err := domain.GetFind(ctx, &model.GetBotFindRequest{ID: testutil.Find1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Find1.Title, resp.Title)
	require.Equal(t, int64(1), resp.AnswerCount)
	require.NotNil(t, resp.User)
	require.Equal(t, testutil.User1.ID, resp.User.ID)

	_, err = domain.GetFind(ctx, &model.GetBotFindRequest{ID: 99999})
	require.EqualError(t, err, "Find not found")
}

func Test_botDomain_DeleteFind(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestBotDomain(t, &testutil.MockStorage{})

	resp, err := domain.DeleteFind(ctx, &model.DeleteBotFindRequest{ID: testutil.Find1.ID})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, "Find 1001 deleted successfully", resp.Message)

	tx := xcontext.DB(ctx).Take(&entity.Find{}, "id=?", testutil.Find1.ID)
	require.ErrorIs(t, tx.Error, gorm.ErrRecordNotFound)

	_, err = domain.DeleteFind(ctx, &model.DeleteBotFindRequest{ID: testutil.Find1.ID})
	require.EqualError(t, err, "Find not found")
}
