package dto

import (
	"omni_inbox/internal/api/inbox/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WireSender chuyển sender lưu trữ nội bộ sang giá trị trả về cho dashboard.
// Phía dashboard dùng "me" cho tin nhắn của nhân viên và "user" cho khách hàng,
// khác với cách lưu trong database nên phải map khi trả ra.
func WireSender(stored string) string {
	switch stored {
	case models.SenderUser:
		return "me"
	case models.SenderCustomer:
		return "user"
	default:
		return stored
	}
}

// MessageResponse là tin nhắn theo định dạng trả về cho client
type MessageResponse struct {
	ID             primitive.ObjectID  `json:"id"`
	ConversationID primitive.ObjectID  `json:"conversationId"`
	Text           string              `json:"text"`
	Sender         string              `json:"sender"`
	Tags           []string            `json:"tags"`
	Attachments    []models.Attachment `json:"attachments"`
	CreatedAt      int64               `json:"createdAt"`
	UpdatedAt      int64               `json:"updatedAt"`
}

// NewMessageResponse chuyển model tin nhắn sang response, áp dụng map sender.
// Tags và Attachments luôn là mảng (không bao giờ null) để client không phải check.
func NewMessageResponse(m models.Message) MessageResponse {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	attachments := m.Attachments
	if attachments == nil {
		attachments = []models.Attachment{}
	}

	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Text:           m.Text,
		Sender:         WireSender(m.Sender),
		Tags:           tags,
		Attachments:    attachments,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// NewMessageResponses chuyển danh sách model tin nhắn sang responses
func NewMessageResponses(messages []models.Message) []MessageResponse {
	result := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		result = append(result, NewMessageResponse(m))
	}
	return result
}

// ConversationListItem là một dòng trong danh sách hội thoại của dashboard.
// Messages chứa duy nhất tin nhắn mới nhất (nếu có) để preview,
// Time là nhãn thời gian tương đối của hoạt động gần nhất.
type ConversationListItem struct {
	ID             primitive.ObjectID `json:"id"`
	Platform       string             `json:"platform"`
	CustomerName   string             `json:"customerName"`
	CustomerAvatar string             `json:"customerAvatar"`
	LastMessage    string             `json:"lastMessage"`
	Pinned         bool               `json:"pinned"`
	Unread         int64              `json:"unread"`
	Online         bool               `json:"online"`
	MessageCount   int64              `json:"messageCount"`
	Messages       []MessageResponse  `json:"messages"`
	Time           string             `json:"time"`
	CreatedAt      int64              `json:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt"`
}

// ConversationResponse là hội thoại theo định dạng trả về cho client
type ConversationResponse struct {
	ID             primitive.ObjectID `json:"id"`
	Platform       string             `json:"platform"`
	CustomerName   string             `json:"customerName"`
	CustomerAvatar string             `json:"customerAvatar"`
	LastMessage    string             `json:"lastMessage"`
	Pinned         bool               `json:"pinned"`
	Unread         int64              `json:"unread"`
	Online         bool               `json:"online"`
	CreatedAt      int64              `json:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt"`
}

// NewConversationResponse chuyển model hội thoại sang response
func NewConversationResponse(conv models.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:             conv.ID,
		Platform:       conv.Platform,
		CustomerName:   conv.CustomerName,
		CustomerAvatar: conv.CustomerAvatar,
		LastMessage:    conv.LastMessage,
		Pinned:         conv.Pinned,
		Unread:         conv.Unread,
		Online:         conv.Online,
		CreatedAt:      conv.CreatedAt,
		UpdatedAt:      conv.UpdatedAt,
	}
}

// ConversationDetail là hội thoại kèm toàn bộ tin nhắn theo thứ tự thời gian tăng dần
type ConversationDetail struct {
	ConversationResponse
	Messages []MessageResponse `json:"messages"`
}

// StatsResponse là số liệu tổng hợp của một nền tảng
type StatsResponse struct {
	TotalMessages      int64 `json:"totalMessages"`
	ClosedOrders       int64 `json:"closedOrders"`
	TotalConversations int64 `json:"totalConversations"`
}
