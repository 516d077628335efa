package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wingedflyer/portal/internal/domain"
	"github.com/wingedflyer/portal/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// BearerToken pulls the session token from the Authorization header,
// falling back to the token query parameter for websocket clients.
func BearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		split := strings.Split(authHeader, " ")
		if len(split) == 2 && split[0] == "Bearer" {
			return split[1]
		}
		return ""
	}
	return c.QueryParam("token")
}

// Require resolves the session and rejects requests from the wrong
// surface. Actor identity lands in the request context.
func (m *AuthMiddleware) Require(kind domain.ActorKind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.Require")
			defer span.End()

			token := BearerToken(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}

			session, err := m.auth.Resolve(ctx, token)
			if err != nil {
				span.RecordError(err)
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired session"})
			}
			if session.Kind != kind {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
			}

			ctx = context.WithValue(ctx, domain.SessionTokenCtxKey, session.Token)
			ctx = context.WithValue(ctx, domain.ActorKindCtxKey, session.Kind)
			ctx = context.WithValue(ctx, domain.ActorIDCtxKey, session.ActorID)
			ctx = context.WithValue(ctx, domain.ActorContextIDCtxKey, session.ContextID)
			ctx = context.WithValue(ctx, domain.ActorDisplayCtxKey, session.Display)
			span.SetAttributes(attribute.Int64("ActorId", session.ActorID))

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// ActorID reads the authenticated actor id from the request context.
func ActorID(c echo.Context) int64 {
	id, _ := c.Request().Context().Value(domain.ActorIDCtxKey).(int64)
	return id
}

// ActorContextID reads the actor's tenancy context id.
func ActorContextID(c echo.Context) int64 {
	id, _ := c.Request().Context().Value(domain.ActorContextIDCtxKey).(int64)
	return id
}

// ActorDisplay reads the display name of the authenticated actor.
func ActorDisplay(c echo.Context) string {
	display, _ := c.Request().Context().Value(domain.ActorDisplayCtxKey).(string)
	return display
}

// SessionToken reads the raw session token.
func SessionToken(c echo.Context) string {
	token, _ := c.Request().Context().Value(domain.SessionTokenCtxKey).(string)
	return token
}
