package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/vikoShak/ATS/internal/auth"
	"github.com/vikoShak/ATS/internal/transport"
)

// UserResolver resolves the session user from a bearer token.
type UserResolver = transport.UserResolver

func username(ctx context.Context) string {
	if user, ok := transport.UserFromContext(ctx); ok {
		return user.Username
	}
	return ""
}

// authMiddleware implements bearer token authentication as MCP middleware.
func authMiddleware(resolver UserResolver) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			// Protocol handshake stays open.
			if method == "initialize" || method == "ping" || method == "notifications/initialized" {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("%w: missing headers", auth.ErrUnauthorized)
			}

			token := transport.BearerToken(extra.Header.Get("Authorization"))
			if token == "" {
				return nil, fmt.Errorf("%w: missing bearer token", auth.ErrUnauthorized)
			}

			user, err := resolver.Resolve(ctx, token)
			if err != nil {
				return nil, fmt.Errorf("resolving session: %w", err)
			}

			return next(transport.WithUser(ctx, user), method, req)
		}
	}
}
