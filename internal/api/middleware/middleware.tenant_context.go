package middleware

import (
	basehdl "omni_inbox/internal/api/base/handler"
	"omni_inbox/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TenantHeader là header chứa định danh tenant của request
const TenantHeader = "X-Tenant-ID"

// TenantContextMiddleware đọc tenant ID từ header và gắn vào context.
// Request thiếu hoặc sai định dạng tenant ID bị chặn với 401.
func TenantContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		raw := c.Get(TenantHeader)
		if raw == "" {
			return basehdl.HandleError(c, common.ErrTenantMissing)
		}

		tenantID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return basehdl.HandleError(c, common.ErrTenantInvalid)
		}

		c.Locals("tenant_id", tenantID)
		return c.Next()
	}
}

// TenantIDFromContext lấy tenant ID đã được middleware gắn vào context
func TenantIDFromContext(c fiber.Ctx) (primitive.ObjectID, error) {
	tenantID, ok := c.Locals("tenant_id").(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, common.ErrTenantMissing
	}
	return tenantID, nil
}
