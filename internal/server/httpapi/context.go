package httpapi

import (
	"context"

	"github.com/Sinduaditya/fisikaap-sub000/internal/logging"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/auth"
)

type ctxKey string

const (
	ctxKeyClaims ctxKey = "claims"
	ctxKeyLogger ctxKey = "logger"
)

func withClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, c)
}

// claimsFrom returns the bearer claims set by the authn middleware.
func claimsFrom(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(ctxKeyClaims).(*auth.Claims)
	return c, ok && c != nil
}

func withLogger(ctx context.Context, l logging.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, l)
}

func loggerFrom(ctx context.Context) logging.Logger {
	if l, ok := ctx.Value(ctxKeyLogger).(logging.Logger); ok {
		return l
	}
	return logging.Nop()
}
