package middleware

import (
	"context"
	"strings"

	"github.com/agrichain-lab/backend/pkg/errorx"
	"github.com/agrichain-lab/backend/pkg/router"
	"github.com/agrichain-lab/backend/pkg/xcontext"
)

// WithAuth extracts the user id from the bearer token (or the access token
// cookie) if one is present. It never fails, handlers which require a user
// chain Authenticate after it.
func WithAuth() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := extractToken(ctx)
		if token == "" {
			return ctx, nil
		}

		info, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return ctx, nil
	}
}

func extractToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)

	authorization := req.Header.Get("Authorization")
	if strings.HasPrefix(authorization, "Bearer ") {
		return strings.TrimPrefix(authorization, "Bearer ")
	}

	cookieName := xcontext.Configs(ctx).Auth.AccessToken.Name
	if cookie, err := req.Cookie(cookieName); err == nil {
		return cookie.Value
	}

	return ""
}
