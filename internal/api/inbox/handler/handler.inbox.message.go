package handler

import (
	"fmt"

	basehdl "omni_inbox/internal/api/base/handler"
	"omni_inbox/internal/api/inbox/dto"
	"omni_inbox/internal/api/inbox/models"
	inboxsvc "omni_inbox/internal/api/inbox/service"
	"omni_inbox/internal/api/middleware"
	"omni_inbox/internal/common"
	"omni_inbox/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// MessageHandler xử lý các request liên quan đến tin nhắn
type MessageHandler struct {
	*basehdl.BaseHandler[models.Message, dto.MessageCreateInput, dto.MessageUpdateInput]
	service             *inboxsvc.MessageService
	conversationService *inboxsvc.ConversationService
}

// NewMessageHandler tạo message handler
func NewMessageHandler() (*MessageHandler, error) {
	svc, err := inboxsvc.NewMessageService()
	if err != nil {
		return nil, err
	}

	convSvc, err := inboxsvc.NewConversationService()
	if err != nil {
		return nil, err
	}

	return &MessageHandler{
		BaseHandler:         basehdl.NewBaseHandler[models.Message, dto.MessageCreateInput, dto.MessageUpdateInput](svc.BaseServiceMongoImpl),
		service:             svc,
		conversationService: convSvc,
	}, nil
}

// HandleCreate thêm tin nhắn mới vào hội thoại
func (h *MessageHandler) HandleCreate(c fiber.Ctx) error {
	tenantID, err := middleware.TenantIDFromContext(c)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	var input dto.MessageCreateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleError(c, err)
	}

	message, err := h.service.Create(c.Context(), tenantID, input)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	logger.LogCRUD(c, "create", "message", message.ID.Hex())
	return basehdl.JSONResponse(c, common.StatusCreated, dto.NewMessageResponse(message))
}

// HandleUpdate cập nhật tags và attachments của tin nhắn
func (h *MessageHandler) HandleUpdate(c fiber.Ctx) error {
	tenantID, err := middleware.TenantIDFromContext(c)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	id, err := h.ObjectIDFromParam(c)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	var input dto.MessageUpdateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleError(c, err)
	}

	message, err := h.service.UpdateFields(c.Context(), tenantID, id, input)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	logger.LogCRUD(c, "update", "message", id.Hex())
	return basehdl.JSONResponse(c, common.StatusOK, dto.NewMessageResponse(message))
}

// HandleDelete xóa một tin nhắn
func (h *MessageHandler) HandleDelete(c fiber.Ctx) error {
	tenantID, err := middleware.TenantIDFromContext(c)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	id, err := h.ObjectIDFromParam(c)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	if err := h.service.Delete(c.Context(), tenantID, id); err != nil {
		return basehdl.HandleError(c, err)
	}

	logger.LogCRUD(c, "delete", "message", id.Hex())
	return basehdl.JSONResponse(c, common.StatusOK, basehdl.MessageResponse{Message: common.MsgDeleted})
}

// HandleStats trả về số liệu tổng hợp của một nền tảng
func (h *MessageHandler) HandleStats(c fiber.Ctx) error {
	tenantID, err := middleware.TenantIDFromContext(c)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	platform := c.Query("platform")
	if !models.IsValidPlatform(platform) {
		return basehdl.HandleError(c, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Platform không hợp lệ: %s", platform), common.StatusBadRequest, nil))
	}

	stats, err := h.conversationService.GetStats(c.Context(), tenantID, platform)
	return basehdl.HandleResponse(c, common.StatusOK, stats, err)
}
