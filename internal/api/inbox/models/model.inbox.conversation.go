package models

import (
	"net/url"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các nền tảng nhắn tin được hỗ trợ
const (
	PlatformFacebook = "facebook"
	PlatformZalo     = "zalo"
	PlatformTelegram = "telegram"
)

// AllPlatforms liệt kê các nền tảng hợp lệ theo thứ tự hiển thị
var AllPlatforms = []string{PlatformFacebook, PlatformZalo, PlatformTelegram}

// IsValidPlatform kiểm tra platform có nằm trong danh sách hỗ trợ không
func IsValidPlatform(platform string) bool {
	for _, p := range AllPlatforms {
		if p == platform {
			return true
		}
	}
	return false
}

// Conversation đại diện cho một hội thoại với khách hàng trên một nền tảng.
// LastMessage là bản denormalize của tin nhắn mới nhất để hiển thị danh sách
// mà không cần join sang collection tin nhắn.
type Conversation struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Platform       string             `json:"platform" bson:"platform" index:"compound:idx_owner_platform"`
	CustomerName   string             `json:"customerName" bson:"customerName"`
	CustomerAvatar string             `json:"customerAvatar" bson:"customerAvatar"`
	LastMessage    string             `json:"lastMessage" bson:"lastMessage"`
	Pinned         bool               `json:"pinned" bson:"pinned"`
	Unread         int64              `json:"unread" bson:"unread"`
	Online         bool               `json:"online" bson:"online"`
	OwnerID        primitive.ObjectID `json:"ownerId" bson:"ownerId" index:"single:1;compound:idx_owner_platform"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}

// DefaultAvatarURL sinh URL avatar placeholder từ tên khách hàng
// khi nền tảng không cung cấp ảnh đại diện.
func DefaultAvatarURL(customerName string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(customerName)
}
