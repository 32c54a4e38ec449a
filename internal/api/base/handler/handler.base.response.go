package handler

import (
	"errors"

	"omni_inbox/internal/common"
	"omni_inbox/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// MessageResponse là envelope cho các response chỉ có thông báo (xóa, lỗi)
type MessageResponse struct {
	Message string `json:"message"`
}

// JSONResponse ghi response JSON với charset utf-8 rõ ràng
// để client hiển thị đúng tiếng Việt.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleResponse trả về resource dưới dạng JSON khi thành công,
// hoặc chuyển sang HandleError khi có lỗi.
func HandleResponse(c fiber.Ctx, statusCode int, result interface{}, err error) error {
	if err != nil {
		return HandleError(c, err)
	}
	return JSONResponse(c, statusCode, result)
}

// HandleError chuyển lỗi thành response {message} với status code phù hợp.
// Lỗi không phải common.Error được coi là lỗi hệ thống (500) và ghi log chi tiết.
func HandleError(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		if customErr.StatusCode >= common.StatusInternalServerError {
			logger.WithRequest(c).WithError(err).Error("Lỗi hệ thống khi xử lý request")
		}
		return JSONResponse(c, customErr.StatusCode, MessageResponse{Message: customErr.Message})
	}

	logger.WithRequest(c).WithError(err).Error("Lỗi không xác định khi xử lý request")
	return JSONResponse(c, common.StatusInternalServerError, MessageResponse{Message: common.MsgInternalError})
}

// SafeHandler bọc handler với recover để panic không làm sập server
func SafeHandler(handler func(c fiber.Ctx) error) func(c fiber.Ctx) error {
	return func(c fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				logger.WithRequest(c).Errorf("Panic trong handler: %v", r)
				_ = JSONResponse(c, common.StatusInternalServerError, MessageResponse{Message: common.MsgInternalError})
			}
		}()
		return handler(c)
	}
}
