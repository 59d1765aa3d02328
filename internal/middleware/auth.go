package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/finds-lab/backend/internal/repository"
	"github.com/finds-lab/backend/pkg/errorx"
	"github.com/finds-lab/backend/pkg/router"
	"github.com/finds-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// AuthVerifier authenticates a request through any of the enabled methods,
// in order: cookie session, access token, API key. The first method that
// succeeds wins.
type AuthVerifier struct {
	useCookieSession bool
	useAccessToken   bool
	useAPIKey        bool
	optional         bool

	apiKeyRepo repository.APIKeyRepository
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) WithCookieSession() *AuthVerifier {
	a.useCookieSession = true
	return a
}

func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.useAccessToken = true
	return a
}

func (a *AuthVerifier) WithAPIKey(apiKeyRepo repository.APIKeyRepository) *AuthVerifier {
	a.useAPIKey = true
	a.apiKeyRepo = apiKeyRepo
	return a
}

// Optional makes an unauthenticated request pass through with no request
// user instead of failing.
func (a *AuthVerifier) Optional() *AuthVerifier {
	a.optional = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if a.useCookieSession {
			if newCtx, ok := a.verifyCookieSession(ctx); ok {
				return newCtx, nil
			}
		}

		if a.useAccessToken {
			if newCtx, ok := a.verifyAccessToken(ctx); ok {
				return newCtx, nil
			}
		}

		if a.useAPIKey {
			newCtx, err := a.verifyAPIKey(ctx)
			if err == nil {
				return newCtx, nil
			}
			if !a.optional {
				return nil, err
			}
		}

		if a.optional {
			return ctx, nil
		}

		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}
}

func (a *AuthVerifier) verifyCookieSession(ctx context.Context) (context.Context, bool) {
	session, err := xcontext.SessionStore(ctx).Get(
		xcontext.HTTPRequest(ctx), xcontext.Configs(ctx).Session.Name)
	if err != nil {
		return nil, false
	}

	userID, ok := session.Values["user_id"].(string)
	if !ok || userID == "" {
		return nil, false
	}

	return xcontext.WithRequestUserID(ctx, userID), true
}

func (a *AuthVerifier) verifyAccessToken(ctx context.Context) (context.Context, bool) {
	token := bearerToken(ctx)
	if token == "" {
		cookie, err := xcontext.HTTPRequest(ctx).Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
		if err != nil {
			return nil, false
		}
		token = cookie.Value
	}

	info, err := xcontext.TokenEngine(ctx).Verify(token)
	if err != nil {
		return nil, false
	}

	return xcontext.WithRequestUserID(ctx, info.ID), true
}

func (a *AuthVerifier) verifyAPIKey(ctx context.Context) (context.Context, error) {
	token := bearerToken(ctx)
	if token == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid or missing API key")
	}

	apiKey, err := a.apiKeyRepo.GetByKey(ctx, token)
	if err == nil {
		if !apiKey.IsActive {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid or missing API key")
		}

		if err := a.apiKeyRepo.UpdateLastUsed(ctx, apiKey.ID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot record api key usage: %v", err)
		}

		return xcontext.WithRequestAPIKey(ctx, token), nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot query api key: %v", err)
		return nil, errorx.Unknown
	}

	// Static secret kept for backward compatibility with early bots.
	legacy := xcontext.Configs(ctx).Bot.LegacyAPIKey
	if legacy != "" && token == legacy {
		return xcontext.WithRequestAPIKey(ctx, token), nil
	}

	return nil, errorx.New(errorx.Unauthenticated, "Invalid or missing API key")
}

func bearerToken(ctx context.Context) string {
	authorization := xcontext.HTTPRequest(ctx).Header.Get("Authorization")
	if !strings.HasPrefix(authorization, "Bearer ") {
		return ""
	}

	return strings.TrimPrefix(authorization, "Bearer ")
}
