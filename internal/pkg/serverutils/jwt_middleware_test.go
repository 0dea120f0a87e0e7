package serverutils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func currentUserApp(local interface{}) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/me", func(ctx *fiber.Ctx) error {
		if local != nil {
			ctx.Locals("user_id", local)
		}
		userId, err := CurrentUserID(ctx)
		if err != nil {
			return err
		}
		return ctx.SendString(userId.String())
	})
	return app
}

func TestCurrentUserID(t *testing.T) {
	userId := uuid.New()

	tests := []struct {
		name       string
		local      interface{}
		wantStatus int
	}{
		{"valid claim", userId.String(), fiber.StatusOK},
		{"missing claim", nil, fiber.StatusUnauthorized},
		{"non-string claim", 12345, fiber.StatusUnauthorized},
		{"malformed uuid", "not-a-uuid", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := currentUserApp(tt.local)
			resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
