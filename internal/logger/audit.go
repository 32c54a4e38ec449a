package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// LogAction ghi log audit cho một hành động trên hệ thống
func LogAction(c fiber.Ctx, action string, resource string, details logrus.Fields) {
	fields := logrus.Fields{
		"action":   action,
		"resource": resource,
		"method":   c.Method(),
		"path":     c.Path(),
		"ip":       c.IP(),
	}

	if requestID, ok := c.Locals("requestid").(string); ok && requestID != "" {
		fields["request_id"] = requestID
	}
	if tenantID := c.Locals("tenant_id"); tenantID != nil {
		fields["tenant_id"] = tenantID
	}
	for k, v := range details {
		fields[k] = v
	}

	GetAuditLogger().WithFields(fields).Info("audit")
}

// LogCRUD ghi log audit cho thao tác CRUD trên một resource
func LogCRUD(c fiber.Ctx, operation string, resource string, resourceID string) {
	details := logrus.Fields{}
	if resourceID != "" {
		details["resource_id"] = resourceID
	}
	LogAction(c, operation, resource, details)
}
