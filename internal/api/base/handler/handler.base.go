package handler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"omni_inbox/internal/api/base/service"
	"omni_inbox/internal/common"
	"omni_inbox/internal/global"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BaseHandler cung cấp các hàm dùng chung cho handler của một resource:
// parse và validate body, lấy ID từ route param, trả response chuẩn.
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService service.BaseServiceMongo[T]
}

// NewBaseHandler tạo base handler trên một base service
func NewBaseHandler[T any, CreateInput any, UpdateInput any](baseService service.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService: baseService,
	}
}

// ParseRequestBody đọc và validate body của request vào input.
// Dùng UseNumber để không mất độ chính xác với các giá trị số lớn.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()

	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	return h.validateInput(input)
}

// validateInput chạy validator trên input đã parse
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateInput(input interface{}) error {
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, fmt.Sprintf("%s: %v", common.MsgValidationError, err), common.StatusBadRequest, err)
	}
	return nil
}

// GetIDFromContext lấy ID từ route param
func (h *BaseHandler[T, CreateInput, UpdateInput]) GetIDFromContext(c fiber.Ctx) string {
	return c.Params("id")
}

// ObjectIDFromParam lấy và parse ObjectID từ route param.
// Trả về lỗi 400 nếu ID không đúng định dạng hex.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ObjectIDFromParam(c fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(h.GetIDFromContext(c))
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationInput, "ID không đúng định dạng", common.StatusBadRequest, err)
	}
	return id, nil
}
