package dto

// ConversationCreateInput là dữ liệu tạo hội thoại mới
type ConversationCreateInput struct {
	Platform       string `json:"platform" validate:"required"`
	CustomerName   string `json:"customerName" validate:"required,not_blank,no_xss"`
	CustomerAvatar string `json:"customerAvatar" validate:"omitempty"`
	Online         bool   `json:"online"`
}

// ConversationUpdateInput là dữ liệu cập nhật hội thoại.
// Chỉ các trường hiển thị được phép sửa; con trỏ nil nghĩa là giữ nguyên.
type ConversationUpdateInput struct {
	Pinned         *bool   `json:"pinned"`
	Online         *bool   `json:"online"`
	CustomerName   *string `json:"customerName" validate:"omitempty,not_blank,no_xss"`
	CustomerAvatar *string `json:"customerAvatar"`
}

// AttachmentInput là dữ liệu một file đính kèm khi tạo/sửa tin nhắn
type AttachmentInput struct {
	Type string `json:"type" validate:"required"`
	URL  string `json:"url" validate:"required"`
	Name string `json:"name"`
}

// MessageCreateInput là dữ liệu tạo tin nhắn mới
type MessageCreateInput struct {
	ConversationID string            `json:"conversationId" validate:"required"`
	Text           string            `json:"text" validate:"required,not_blank"`
	Sender         string            `json:"sender" validate:"required"`
	Tags           []string          `json:"tags"`
	Attachments    []AttachmentInput `json:"attachments" validate:"omitempty,dive"`
}

// MessageUpdateInput là dữ liệu cập nhật tin nhắn.
// Chỉ Tags và Attachments được phép thay đổi sau khi tạo.
type MessageUpdateInput struct {
	Tags        *[]string          `json:"tags"`
	Attachments *[]AttachmentInput `json:"attachments" validate:"omitempty,dive"`
}
