package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Phía gửi tin nhắn theo cách lưu trữ nội bộ
const (
	SenderUser     = "user"     // Nhân viên trả lời từ dashboard
	SenderCustomer = "customer" // Khách hàng nhắn đến
)

// IsValidSender kiểm tra sender có hợp lệ không
func IsValidSender(sender string) bool {
	return sender == SenderUser || sender == SenderCustomer
}

// Các loại attachment được hỗ trợ
const (
	AttachmentImage = "image"
	AttachmentFile  = "file"
	AttachmentIcon  = "icon"
)

// IsValidAttachmentType kiểm tra loại attachment có hợp lệ không
func IsValidAttachmentType(attachmentType string) bool {
	return attachmentType == AttachmentImage || attachmentType == AttachmentFile || attachmentType == AttachmentIcon
}

// Attachment là file đính kèm của một tin nhắn
type Attachment struct {
	Type string `json:"type" bson:"type"`
	URL  string `json:"url" bson:"url"`
	Name string `json:"name" bson:"name"`
}

// Message là một tin nhắn trong hội thoại.
// ConversationID và Sender không thay đổi sau khi tạo,
// chỉ Tags và Attachments được phép cập nhật.
type Message struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ConversationID primitive.ObjectID `json:"conversationId" bson:"conversationId" index:"single:1"`
	Text           string             `json:"text" bson:"text"`
	Sender         string             `json:"sender" bson:"sender"`
	Tags           []string           `json:"tags" bson:"tags"`
	Attachments    []Attachment       `json:"attachments" bson:"attachments"`
	OwnerID        primitive.ObjectID `json:"ownerId" bson:"ownerId" index:"single:1"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}
