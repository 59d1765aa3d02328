package main

import (
	"context"
	"net/http"
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/finds-lab/backend/config"
	"github.com/finds-lab/backend/internal/domain"
	"github.com/finds-lab/backend/internal/repository"
	"github.com/finds-lab/backend/pkg/logger"
	"github.com/finds-lab/backend/pkg/ratelimit"
	"github.com/finds-lab/backend/pkg/router"
	"github.com/finds-lab/backend/pkg/storage"
	"github.com/finds-lab/backend/pkg/xcontext"
	"github.com/finds-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context

	configs *config.Configs
	logger  logger.Logger
	db      *gorm.DB

	fileStorage storage.Storage
	redisClient xredis.Client
	limiter     ratelimit.Limiter
	idGenerator *snowflake.Node

	userRepo   repository.UserRepository
	findRepo   repository.FindRepository
	answerRepo repository.AnswerRepository
	apiKeyRepo repository.APIKeyRepository

	authDomain   domain.AuthDomain
	userDomain   domain.UserDomain
	findDomain   domain.FindDomain
	answerDomain domain.AnswerDomain
	apiKeyDomain domain.APIKeyDomain
	botDomain    domain.BotDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		panic(err)
	}

	// Secrets always win from the environment.
	overrideFromEnv(&cfg.Auth.TokenSecret, "TOKEN_SECRET")
	overrideFromEnv(&cfg.Session.Secret, "SESSION_SECRET")
	overrideFromEnv(&cfg.Bot.LegacyAPIKey, "BOT_API_KEY")
	overrideFromEnv(&cfg.Database.Password, "DB_PASSWORD")
	overrideFromEnv(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	overrideFromEnv(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")
	overrideFromEnv(&cfg.Redis.Addr, "REDIS_ADDR")

	s.configs = &cfg
	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func overrideFromEnv(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok {
		*target = value
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" || s.configs.Env == "dev" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.New(mysql.Config{
		DSN:                       s.configs.Database.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadStorage() {
	s.fileStorage = storage.NewS3Storage(s.configs.Storage)
}

func (s *srv) loadRateLimiter() {
	limit := s.configs.RateLimit.Requests
	window := s.configs.RateLimit.Window.Duration()

	if s.configs.Redis.Addr == "" {
		s.limiter = ratelimit.NewLocalLimiter(limit, window)
		return
	}

	var err error
	s.redisClient, err = xredis.NewClient(s.ctx, s.configs.Redis.Addr)
	if err != nil {
		panic(err)
	}

	s.limiter = ratelimit.NewRedisLimiter(s.redisClient, limit, window)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.findRepo = repository.NewFindRepository()
	s.answerRepo = repository.NewAnswerRepository()
	s.apiKeyRepo = repository.NewAPIKeyRepository()
}

func (s *srv) loadDomains() {
	var err error
	s.idGenerator, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.findDomain = domain.NewFindDomain(s.findRepo, s.answerRepo, s.userRepo, s.fileStorage, s.idGenerator)
	s.answerDomain = domain.NewAnswerDomain(s.answerRepo, s.findRepo, s.userRepo, s.idGenerator)
	s.apiKeyDomain = domain.NewAPIKeyDomain(s.apiKeyRepo, s.userRepo)
	s.botDomain = domain.NewBotDomain(s.findRepo, s.answerRepo, s.userRepo, s.fileStorage, s.idGenerator)
}
