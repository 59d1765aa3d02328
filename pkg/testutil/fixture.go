package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/finds-lab/backend/internal/entity"
	"github.com/finds-lab/backend/internal/repository"
)

var (
	User1 = entity.User{
		Base:         entity.Base{ID: "user1"},
		Name:         sql.NullString{Valid: true, String: "Alice Digger"},
		Email:        "alice@example.com",
		PasswordHash: "$2a$12$fixturefixturefixturefixturefixturefixturefixturefixtu",
		Role:         entity.RoleUser,
	}

	User2 = entity.User{
		Base:         entity.Base{ID: "user2"},
		Name:         sql.NullString{Valid: true, String: "Bob Finder"},
		Email:        "bob@example.com",
		PasswordHash: "$2a$12$fixturefixturefixturefixturefixturefixturefixturefixtu",
		Role:         entity.RoleUser,
	}

	Moderator1 = entity.User{
		Base:         entity.Base{ID: "moderator1"},
		Name:         sql.NullString{Valid: true, String: "Mo Derator"},
		Email:        "mo@example.com",
		PasswordHash: "$2a$12$fixturefixturefixturefixturefixturefixturefixturefixtu",
		Role:         entity.RoleModerator,
	}

	Find1 = entity.Find{
		SnowflakeBase: entity.SnowflakeBase{ID: 1001},
		Title:         "Old copper coin",
		Description:   "Found this small coin near the river bank",
		Location:      "Riverside park",
		Category:      entity.CategoryCoins,
		Images:        entity.Array[string]{"https://files.example.com/finds/coin.jpg"},
		UserID:        sql.NullString{Valid: true, String: User1.ID},
	}

	Answer1 = entity.Answer{
		SnowflakeBase: entity.SnowflakeBase{ID: 2001},
		Content:       "Looks like a Victorian halfpenny",
		Verdict:       sql.NullString{Valid: true, String: "keep"},
		FindID:        Find1.ID,
		UserID:        sql.NullString{Valid: true, String: User2.ID},
	}

	ApiKey1 = entity.APIKey{
		Base:      entity.Base{ID: "apikey1"},
		Key:       "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
		Name:      "scanner bot",
		IsActive:  true,
		CreatedBy: Moderator1.ID,
	}

	ApiKey2 = entity.APIKey{
		Base:      entity.Base{ID: "apikey2"},
		Key:       "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef",
		Name:      "retired bot",
		IsActive:  false,
		CreatedBy: Moderator1.ID,
	}
)

// CreateFixtureDb populates the context database with a small consistent
// data set shared by domain tests.
func CreateFixtureDb(ctx context.Context) {
	insertUsers(ctx)
	insertFinds(ctx)
	insertAnswers(ctx)
	insertAPIKeys(ctx)
}

func insertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, user := range []entity.User{User1, User2, Moderator1} {
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func insertFinds(ctx context.Context) {
	findRepo := repository.NewFindRepository()
	find := Find1
	find.CreatedAt = time.Now().Add(-time.Hour)
	if err := findRepo.Create(ctx, &find); err != nil {
		panic(err)
	}
}

func insertAnswers(ctx context.Context) {
	answerRepo := repository.NewAnswerRepository()
	answer := Answer1
	if err := answerRepo.Create(ctx, &answer); err != nil {
		panic(err)
	}
}

func insertAPIKeys(ctx context.Context) {
	apiKeyRepo := repository.NewAPIKeyRepository()
	for _, key := range []entity.APIKey{ApiKey1, ApiKey2} {
		if err := apiKeyRepo.Create(ctx, &key); err != nil {
			panic(err)
		}
	}
}
