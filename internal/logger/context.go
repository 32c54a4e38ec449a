package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// WithRequest tạo entry kèm thông tin request từ Fiber context
func WithRequest(c fiber.Ctx) *logrus.Entry {
	fields := logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	}

	if requestID, ok := c.Locals("requestid").(string); ok && requestID != "" {
		fields["request_id"] = requestID
	}

	if tenantID := c.Locals("tenant_id"); tenantID != nil {
		fields["tenant_id"] = tenantID
	}

	return GetAppLogger().WithFields(fields)
}

// WithFields tạo entry trên app logger với các field cho trước
func WithFields(fields logrus.Fields) *logrus.Entry {
	return GetAppLogger().WithFields(fields)
}
