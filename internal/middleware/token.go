package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/finds-lab/backend/pkg/router"
	"github.com/finds-lab/backend/pkg/xcontext"
)

type AccessTokenResponse interface {
	AccessTokenInfo() string
}

func HandleSetAccessToken() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		tokenResp, ok := xcontext.Response(ctx).(AccessTokenResponse)
		if ok {
			cfg := xcontext.Configs(ctx)
			http.SetCookie(xcontext.HTTPWriter(ctx), &http.Cookie{
				Name:     cfg.Auth.AccessToken.Name,
				Value:    tokenResp.AccessTokenInfo(),
				Path:     "/",
				Expires:  time.Now().Add(time.Duration(cfg.Auth.AccessToken.Expiration)),
				Secure:   true,
				HttpOnly: false,
			})
		}

		return ctx, nil
	}
}
