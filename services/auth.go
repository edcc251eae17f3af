package services

import (
	"net/http"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"

	"github.com/tarunbommali/nxtgen-arena-sub000/shared"
)

// AuthMiddleware guards routes behind bearer token verification. The user
// id from the token lands in c.Locals(shared.UserID); RequireRole looks the
// user up to enforce role membership on admin routes.
type AuthMiddleware struct {
	context.DefaultService

	sqlSvc *SqlService
	jwtSvc *JWTService
}

const AUTH_MIDDLEWARE_SVC = "auth"

func (svc AuthMiddleware) Id() string {
	return AUTH_MIDDLEWARE_SVC
}

func (svc *AuthMiddleware) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	return nil
}

func (svc *AuthMiddleware) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		}

		userID, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", "Invalid JWT token")
		}

		if userID == "" {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", "Invalid user ID in token")
		}

		c.Locals(shared.UserID, userID)
		return c.Next()
	}
}

// RequireRole must run after RequiredAuth.
func (svc *AuthMiddleware) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(shared.UserID).(string)
		if !ok || userID == "" {
			return shared.ResponseJSON(c, http.StatusUnauthorized, "Unauthorized", "Missing authentication")
		}

		user, err := svc.sqlSvc.GetUserByID(userID)
		if err != nil {
			return shared.ResponseJSON(c, http.StatusForbidden, "Forbidden", "Unknown user")
		}
		if user.Role != role {
			return shared.ResponseJSON(c, http.StatusForbidden, "Forbidden", "Insufficient role")
		}

		c.Locals(shared.UserRole, user.Role)
		return c.Next()
	}
}
