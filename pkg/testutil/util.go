package testutil

import (
	"context"
	"time"

	"github.com/finds-lab/backend/config"
	"github.com/finds-lab/backend/internal/entity"
	"github.com/finds-lab/backend/internal/model"
	"github.com/finds-lab/backend/pkg/authenticator"
	"github.com/finds-lab/backend/pkg/logger"
	"github.com/finds-lab/backend/pkg/xcontext"
	"github.com/gorilla/sessions"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// LegacyAPIKey is the static bot secret accepted by the mocked config.
const LegacyAPIKey = "legacy-static-bot-key"

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: config.Duration(time.Minute),
			},
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "session",
		},
		File: config.FileConfigs{
			MaxMemory: 32 << 20,
		},
		Bot: config.BotConfigs{
			LegacyAPIKey: LegacyAPIKey,
		},
		RateLimit: config.RateLimitConfigs{
			Requests: 100,
			Window:   config.Duration(time.Hour),
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, time.Duration(cfg.Auth.AccessToken.Expiration)))
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
