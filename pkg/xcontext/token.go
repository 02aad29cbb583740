package xcontext

import (
	"context"

	"github.com/agrichain-lab/backend/internal/model"
	"github.com/agrichain-lab/backend/pkg/authenticator"
)

type tokenEngineKey struct{}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[model.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken])
}
