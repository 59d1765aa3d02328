package main

import (
	"fmt"
	"net/http"

	"github.com/finds-lab/backend/internal/middleware"
	"github.com/finds-lab/backend/pkg/router"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.loadStorage()
	s.loadRateLimiter()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting server on port: %s", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Auth API. A successful login both saves the cookie session and sets
	// the access token cookie.
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSaveSession())
	authRouter.After(middleware.HandleSetAccessToken())
	{
		router.POST(authRouter, "/auth/register", s.authDomain.Register)
		router.POST(authRouter, "/auth/login", s.authDomain.Login)
	}

	// Public API. The create endpoint attaches the account when the caller
	// happens to be logged in, but never requires it.
	publicRouter := s.router.Branch()
	optionalVerifier := middleware.NewAuthVerifier().WithCookieSession().WithAccessToken().Optional()
	publicRouter.Before(optionalVerifier.Middleware())
	{
		router.GET(publicRouter, "/finds", s.findDomain.GetList)
		router.GET(publicRouter, "/finds/:id", s.findDomain.Get)
		router.POST(publicRouter, "/finds", s.findDomain.Create)
		router.POST(publicRouter, "/answers", s.answerDomain.Create)
	}

	// These following APIs need an authenticated account.
	authVerifier := middleware.NewAuthVerifier().WithCookieSession().WithAccessToken()
	accountRouter := s.router.Branch()
	accountRouter.Before(authVerifier.Middleware())
	{
		router.GET(accountRouter, "/users/me", s.userDomain.GetMe)
		router.GET(accountRouter, "/users", s.userDomain.GetList)
		router.PUT(accountRouter, "/finds/:id", s.findDomain.Update)
		router.DELETE(accountRouter, "/finds/:id", s.findDomain.Delete)
		router.DELETE(accountRouter, "/answers/:id", s.answerDomain.Delete)

		// API-Key management, moderators only.
		router.GET(accountRouter, "/admin/api-keys", s.apiKeyDomain.GetList)
		router.POST(accountRouter, "/admin/api-keys", s.apiKeyDomain.Create)
		router.PATCH(accountRouter, "/admin/api-keys/:id", s.apiKeyDomain.Toggle)
		router.DELETE(accountRouter, "/admin/api-keys/:id", s.apiKeyDomain.Delete)
	}

	// Bot API, authenticated by API key and rate limited per credential.
	botRouter := s.router.Branch()
	botVerifier := middleware.NewAuthVerifier().WithAPIKey(s.apiKeyRepo)
	botRouter.Before(botVerifier.Middleware())
	botRouter.Before(middleware.RateLimit(s.limiter))
	{
		router.POST(botRouter, "/bot/finds", s.botDomain.CreateFind)
		router.GET(botRouter, "/bot/finds/:id", s.botDomain.GetFind)
		router.DELETE(botRouter, "/bot/finds/:id", s.botDomain.DeleteFind)
	}
}
