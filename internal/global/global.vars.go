package global

import (
	"omni_inbox/config"
	"omni_inbox/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_Inbox_CollectionName chứa tên các collection trong MongoDB
type MongoDB_Inbox_CollectionName struct {
	InboxConversations string // Tên collection cho cuộc trò chuyện đa nền tảng
	InboxMessages      string // Tên collection cho tin nhắn thuộc cuộc trò chuyện
}

// Các biến toàn cục
var Validate *validator.Validate                                                      // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                                     // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                                        // Cấu hình của server
var MongoDB_ColNames MongoDB_Inbox_CollectionName = *new(MongoDB_Inbox_CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
