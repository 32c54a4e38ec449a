package service

import (
	"context"
	"errors"
	"fmt"

	basesvc "omni_inbox/internal/api/base/service"
	"omni_inbox/internal/api/inbox/dto"
	"omni_inbox/internal/api/inbox/models"
	"omni_inbox/internal/common"
	"omni_inbox/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InboxEntry là một hội thoại kèm dữ liệu phụ để hiển thị danh sách:
// tin nhắn mới nhất và tổng số tin nhắn.
type InboxEntry struct {
	Conversation models.Conversation
	Latest       *models.Message
	MessageCount int64
}

// ConversationService xử lý nghiệp vụ hội thoại.
// Giữ thêm base service của collection tin nhắn để đếm, lấy preview
// và xóa cascade mà không phụ thuộc vòng vào MessageService.
type ConversationService struct {
	*basesvc.BaseServiceMongoImpl[models.Conversation]
	messages basesvc.BaseServiceMongo[models.Message]
}

// NewConversationService tạo conversation service từ các collection đã đăng ký
func NewConversationService() (*ConversationService, error) {
	convCol, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.InboxConversations)
	if !exists {
		return nil, fmt.Errorf("failed to get conversations collection: %v", common.ErrNotFound)
	}

	msgCol, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.InboxMessages)
	if !exists {
		return nil, fmt.Errorf("failed to get messages collection: %v", common.ErrNotFound)
	}

	return &ConversationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Conversation](convCol),
		messages:             basesvc.NewBaseServiceMongo[models.Message](msgCol),
	}, nil
}

// listSortOrder định nghĩa thứ tự hiển thị inbox: ghim trước, rồi theo số tin
// chưa đọc, rồi theo hoạt động gần nhất. Timestamp dùng UnixMilli nên hai hội
// thoại có thể trùng cả ba khóa; _id làm khóa phụ để hai lần gọi liên tiếp
// luôn trả về cùng một thứ tự.
func listSortOrder() bson.D {
	return bson.D{
		{Key: "pinned", Value: -1},
		{Key: "unread", Value: -1},
		{Key: "updatedAt", Value: -1},
		{Key: "_id", Value: -1},
	}
}

// ListInbox trả về danh sách hội thoại của một tenant trên một nền tảng,
// sắp xếp theo listSortOrder. Mỗi entry kèm tin nhắn mới nhất và tổng số
// tin nhắn của hội thoại.
func (s *ConversationService) ListInbox(ctx context.Context, ownerID primitive.ObjectID, platform string) ([]InboxEntry, error) {
	filter := bson.M{"ownerId": ownerID, "platform": platform}
	opts := options.Find().SetSort(listSortOrder())

	conversations, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	entries := make([]InboxEntry, 0, len(conversations))
	for _, conv := range conversations {
		msgFilter := bson.M{"conversationId": conv.ID}

		count, err := s.messages.CountDocuments(ctx, msgFilter)
		if err != nil {
			return nil, err
		}

		entry := InboxEntry{Conversation: conv, MessageCount: count}

		// Lấy tin nhắn mới nhất làm preview, hội thoại trống thì bỏ qua
		latestOpts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		latest, err := s.messages.FindOne(ctx, msgFilter, latestOpts)
		if err == nil {
			entry.Latest = &latest
		} else if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// Create tạo hội thoại mới với trạng thái ban đầu:
// chưa có tin nhắn, chưa ghim, không có tin chưa đọc.
// Nếu không có avatar thì sinh avatar placeholder từ tên khách hàng.
func (s *ConversationService) Create(ctx context.Context, ownerID primitive.ObjectID, input dto.ConversationCreateInput) (models.Conversation, error) {
	if !models.IsValidPlatform(input.Platform) {
		return models.Conversation{}, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Platform không hợp lệ: %s", input.Platform), common.StatusBadRequest, nil)
	}

	avatar := input.CustomerAvatar
	if avatar == "" {
		avatar = models.DefaultAvatarURL(input.CustomerName)
	}

	conversation := models.Conversation{
		Platform:       input.Platform,
		CustomerName:   input.CustomerName,
		CustomerAvatar: avatar,
		LastMessage:    "",
		Pinned:         false,
		Unread:         0,
		Online:         input.Online,
		OwnerID:        ownerID,
	}

	return s.InsertOne(ctx, conversation)
}

// GetDetail trả về hội thoại kèm toàn bộ tin nhắn theo thứ tự thời gian tăng dần.
// Mở hội thoại đồng nghĩa đã đọc nên unread được reset về 0 nguyên tử trong
// cùng thao tác. Lưu ý FindOneAndUpdate luôn ghi updatedAt mới, tức là mỗi lần
// mở đều đẩy hội thoại lên đầu nhóm theo hoạt động gần nhất và làm mới nhãn
// thời gian tương đối của nó.
func (s *ConversationService) GetDetail(ctx context.Context, ownerID primitive.ObjectID, id primitive.ObjectID) (models.Conversation, []models.Message, error) {
	filter := bson.M{"_id": id, "ownerId": ownerID}
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{"unread": int64(0)},
	}

	conversation, err := s.FindOneAndUpdate(ctx, filter, update, nil)
	if err != nil {
		return models.Conversation{}, nil, err
	}

	msgOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	messages, err := s.messages.Find(ctx, bson.M{"conversationId": id}, msgOpts)
	if err != nil {
		return models.Conversation{}, nil, err
	}

	return conversation, messages, nil
}

// UpdateFields cập nhật các trường hiển thị của hội thoại.
// Các trường đếm và denormalize (unread, lastMessage) không đi qua đây.
func (s *ConversationService) UpdateFields(ctx context.Context, ownerID primitive.ObjectID, id primitive.ObjectID, input dto.ConversationUpdateInput) (models.Conversation, error) {
	set := map[string]interface{}{}
	if input.Pinned != nil {
		set["pinned"] = *input.Pinned
	}
	if input.Online != nil {
		set["online"] = *input.Online
	}
	if input.CustomerName != nil {
		set["customerName"] = *input.CustomerName
	}
	if input.CustomerAvatar != nil {
		set["customerAvatar"] = *input.CustomerAvatar
	}

	filter := bson.M{"_id": id, "ownerId": ownerID}
	return s.FindOneAndUpdate(ctx, filter, basesvc.ToUpdateData(set), nil)
}

// DeleteCascade xóa hội thoại và toàn bộ tin nhắn thuộc về nó
func (s *ConversationService) DeleteCascade(ctx context.Context, ownerID primitive.ObjectID, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "ownerId": ownerID}
	if _, err := s.FindOneAndDelete(ctx, filter); err != nil {
		return err
	}

	if _, err := s.messages.DeleteMany(ctx, bson.M{"conversationId": id}); err != nil {
		return err
	}

	return nil
}
