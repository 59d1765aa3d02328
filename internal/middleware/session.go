package middleware

import (
	"context"

	"github.com/finds-lab/backend/pkg/router"
	"github.com/finds-lab/backend/pkg/xcontext"
)

type SessionResponse interface {
	SessionUserID() string
}

// HandleSaveSession persists the interactive login session after a handler
// whose response carries a session user.
func HandleSaveSession() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		sessionResp, ok := xcontext.Response(ctx).(SessionResponse)
		if !ok {
			return ctx, nil
		}

		session, err := xcontext.SessionStore(ctx).Get(
			xcontext.HTTPRequest(ctx), xcontext.Configs(ctx).Session.Name)
		if err != nil {
			return nil, err
		}

		session.Values["user_id"] = sessionResp.SessionUserID()
		if err := session.Save(xcontext.HTTPRequest(ctx), xcontext.HTTPWriter(ctx)); err != nil {
			return nil, err
		}

		return ctx, nil
	}
}
