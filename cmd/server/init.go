package main

import (
	"context"

	"omni_inbox/config"
	"omni_inbox/internal/api/inbox/models"
	"omni_inbox/internal/database"
	"omni_inbox/internal/global"

	"github.com/sirupsen/logrus"
)

// initColNames gán tên các collection dùng trong hệ thống
func initColNames() {
	global.MongoDB_ColNames.InboxConversations = "inbox_conversations"
	global.MongoDB_ColNames.InboxMessages = "inbox_messages"
}

// initValidator khởi tạo validator với các rule custom
func initValidator() {
	global.InitValidator()
}

// initConfig đọc cấu hình từ file env theo môi trường
func initConfig() {
	cfg := config.NewConfig()
	if cfg == nil {
		logrus.Fatal("Không thể đọc cấu hình server")
	}
	global.MongoDB_ServerConfig = cfg
}

// initDatabase_MongoDB kết nối MongoDB, đảm bảo database/collection tồn tại
// và đồng bộ index theo định nghĩa trên model
func initDatabase_MongoDB() {
	client, err := database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Không thể kết nối MongoDB: %v", err)
	}
	global.MongoDB_Session = client

	if err := database.EnsureDatabaseAndCollections(client); err != nil {
		logrus.Fatalf("Không thể khởi tạo database và collections: %v", err)
	}

	db := client.Database(global.MongoDB_ServerConfig.MongoDB_DBName_Inbox)

	if err := database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.InboxConversations), models.Conversation{}); err != nil {
		logrus.Fatalf("Không thể tạo index cho collection %s: %v", global.MongoDB_ColNames.InboxConversations, err)
	}
	if err := database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.InboxMessages), models.Message{}); err != nil {
		logrus.Fatalf("Không thể tạo index cho collection %s: %v", global.MongoDB_ColNames.InboxMessages, err)
	}
}

// InitGlobal khởi tạo các biến toàn cục theo thứ tự phụ thuộc
func InitGlobal() {
	initColNames()
	initValidator()
	initConfig()
	initDatabase_MongoDB()
}
