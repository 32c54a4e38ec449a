package handler

import (
	"context"
	"time"

	"omni_inbox/internal/common"
	"omni_inbox/internal/global"

	"github.com/gofiber/fiber/v3"
)

// SystemHandler xử lý các endpoint hệ thống (health check)
type SystemHandler struct{}

// NewSystemHandler tạo system handler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// HandleHealth kiểm tra tình trạng server và kết nối database.
// Trả về 503 nếu MongoDB không phản hồi trong 2 giây.
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	dbStatus := "connected"
	status := "healthy"
	statusCode := common.StatusOK

	if global.MongoDB_Session == nil {
		dbStatus = "not_initialized"
		status = "degraded"
		statusCode = common.StatusServiceUnavailable
	} else if err := global.MongoDB_Session.Ping(ctx, nil); err != nil {
		dbStatus = "disconnected"
		status = "degraded"
		statusCode = common.StatusServiceUnavailable
	}

	return JSONResponse(c, statusCode, fiber.Map{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().UnixMilli(),
	})
}
