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
	"omni_inbox/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// ConversationHandler xử lý các request liên quan đến hội thoại
type ConversationHandler struct {
	*basehdl.BaseHandler[models.Conversation, dto.ConversationCreateInput, dto.ConversationUpdateInput]
	service *inboxsvc.ConversationService
}

// NewConversationHandler tạo conversation handler
func NewConversationHandler() (*ConversationHandler, error) {
	svc, err := inboxsvc.NewConversationService()
	if err != nil {
		return nil, err
	}

	return &ConversationHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Conversation, dto.ConversationCreateInput, dto.ConversationUpdateInput](svc.BaseServiceMongoImpl),
		service:     svc,
	}, nil
}

// newListItem dựng một dòng danh sách từ entry của service
func newListItem(entry inboxsvc.InboxEntry) dto.ConversationListItem {
	conv := entry.Conversation

	messages := make([]dto.MessageResponse, 0, 1)
	if entry.Latest != nil {
		messages = append(messages, dto.NewMessageResponse(*entry.Latest))
	}

	return dto.ConversationListItem{
		ID:             conv.ID,
		Platform:       conv.Platform,
		CustomerName:   conv.CustomerName,
		CustomerAvatar: conv.CustomerAvatar,
		LastMessage:    conv.LastMessage,
		Pinned:         conv.Pinned,
		Unread:         conv.Unread,
		Online:         conv.Online,
		MessageCount:   entry.MessageCount,
		Messages:       messages,
		Time:           utility.FormatRelativeTime(conv.UpdatedAt),
		CreatedAt:      conv.CreatedAt,
		UpdatedAt:      conv.UpdatedAt,
	}
}

// HandleList trả về danh sách hội thoại của một nền tảng.
// Platform không hợp lệ bị chặn với 400 trước khi chạm database.
func (h *ConversationHandler) HandleList(c fiber.Ctx) error {
	tenantID, err := middleware.TenantIDFromContext(c)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	platform := c.Query("platform")
	if !models.IsValidPlatform(platform) {
		return basehdl.HandleError(c, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Platform không hợp lệ: %s", platform), common.StatusBadRequest, nil))
	}

	entries, err := h.service.ListInbox(c.Context(), tenantID, platform)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	items := make([]dto.ConversationListItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, newListItem(entry))
	}

	return basehdl.JSONResponse(c, common.StatusOK, items)
}

// HandleCreate tạo hội thoại mới
func (h *ConversationHandler) HandleCreate(c fiber.Ctx) error {
	tenantID, err := middleware.TenantIDFromContext(c)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	var input dto.ConversationCreateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleError(c, err)
	}

	conversation, err := h.service.Create(c.Context(), tenantID, input)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	logger.LogCRUD(c, "create", "conversation", conversation.ID.Hex())
	return basehdl.JSONResponse(c, common.StatusCreated, dto.NewConversationResponse(conversation))
}

// HandleGetWithMessages trả về hội thoại kèm toàn bộ tin nhắn,
// đồng thời đánh dấu đã đọc (reset unread về 0).
func (h *ConversationHandler) HandleGetWithMessages(c fiber.Ctx) error {
	tenantID, err := middleware.TenantIDFromContext(c)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	id, err := h.ObjectIDFromParam(c)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	conversation, messages, err := h.service.GetDetail(c.Context(), tenantID, id)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	detail := dto.ConversationDetail{
		ConversationResponse: dto.NewConversationResponse(conversation),
		Messages:             dto.NewMessageResponses(messages),
	}
	return basehdl.JSONResponse(c, common.StatusOK, detail)
}

// HandleUpdate cập nhật các trường hiển thị của hội thoại
func (h *ConversationHandler) HandleUpdate(c fiber.Ctx) error {
	tenantID, err := middleware.TenantIDFromContext(c)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	id, err := h.ObjectIDFromParam(c)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	var input dto.ConversationUpdateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleError(c, err)
	}

	conversation, err := h.service.UpdateFields(c.Context(), tenantID, id, input)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	logger.LogCRUD(c, "update", "conversation", id.Hex())
	return basehdl.JSONResponse(c, common.StatusOK, dto.NewConversationResponse(conversation))
}

// HandleDelete xóa hội thoại và toàn bộ tin nhắn của nó
func (h *ConversationHandler) HandleDelete(c fiber.Ctx) error {
	tenantID, err := middleware.TenantIDFromContext(c)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	id, err := h.ObjectIDFromParam(c)
	if err != nil {
		return basehdl.HandleError(c, err)
	}

	if err := h.service.DeleteCascade(c.Context(), tenantID, id); err != nil {
		return basehdl.HandleError(c, err)
	}

	logger.LogCRUD(c, "delete", "conversation", id.Hex())
	return basehdl.JSONResponse(c, common.StatusOK, basehdl.MessageResponse{Message: common.MsgDeleted})
}
