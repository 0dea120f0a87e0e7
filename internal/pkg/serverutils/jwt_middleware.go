package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JwtMiddleware resolves the current user from the bearer token issued by the
// identity service. Token issuance lives outside this backend; here the token
// is only verified and its user claims exposed via Locals.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return Unauthenticated("Missing token")
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return Unauthenticated("Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Unauthenticated("Invalid claims")
	}

	ctx.Locals("user_id", claims["user_id"])
	if email, ok := claims["email"].(string); ok {
		ctx.Locals("user_email", email)
	}
	return ctx.Next()
}

// CurrentUserID reads the user id the middleware stored in Locals. Tokens from
// the identity service can carry a missing or malformed user_id claim, so the
// value is never trusted blindly.
func CurrentUserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, Unauthenticated("Missing user identity")
	}
	userId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, Unauthenticated("Invalid user identity")
	}
	return userId, nil
}
