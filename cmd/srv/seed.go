package main

import (
	"database/sql"
	"errors"

	"github.com/finds-lab/backend/internal/entity"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// startSeed creates the first moderator account so API keys can be managed
// from a fresh database.
func (s *srv) startSeed(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.loadRepos()

	email := cctx.String("email")
	password := cctx.String("password")

	_, err := s.userRepo.GetByEmail(s.ctx, email)
	if err == nil {
		s.logger.Infof("Moderator %s already exists", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}

	err = s.userRepo.Create(s.ctx, &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		Name:         sql.NullString{Valid: true, String: "Moderator"},
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         entity.RoleModerator,
	})
	if err != nil {
		return err
	}

	s.logger.Infof("Created moderator %s", email)
	return nil
}
