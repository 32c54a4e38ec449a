package service

import (
	"context"
	"fmt"

	basesvc "omni_inbox/internal/api/base/service"
	"omni_inbox/internal/api/inbox/dto"
	"omni_inbox/internal/api/inbox/models"
	"omni_inbox/internal/common"
	"omni_inbox/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageService xử lý nghiệp vụ tin nhắn.
// Giữ thêm base service của collection hội thoại để cập nhật
// lastMessage và bộ đếm unread khi có tin nhắn mới.
type MessageService struct {
	*basesvc.BaseServiceMongoImpl[models.Message]
	conversations basesvc.BaseServiceMongo[models.Conversation]
}

// NewMessageService tạo message service từ các collection đã đăng ký
func NewMessageService() (*MessageService, error) {
	msgCol, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.InboxMessages)
	if !exists {
		return nil, fmt.Errorf("failed to get messages collection: %v", common.ErrNotFound)
	}

	convCol, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.InboxConversations)
	if !exists {
		return nil, fmt.Errorf("failed to get conversations collection: %v", common.ErrNotFound)
	}

	return &MessageService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Message](msgCol),
		conversations:        basesvc.NewBaseServiceMongo[models.Conversation](convCol),
	}, nil
}

// toAttachments chuyển attachment input sang model
func toAttachments(inputs []dto.AttachmentInput) ([]models.Attachment, error) {
	attachments := make([]models.Attachment, 0, len(inputs))
	for _, a := range inputs {
		if !models.IsValidAttachmentType(a.Type) {
			return nil, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("Loại attachment không hợp lệ: %s", a.Type), common.StatusBadRequest, nil)
		}
		attachments = append(attachments, models.Attachment{
			Type: a.Type,
			URL:  a.URL,
			Name: a.Name,
		})
	}
	return attachments, nil
}

// Create thêm tin nhắn mới vào một hội thoại của tenant.
// Hội thoại phải tồn tại và thuộc về tenant trước khi ghi tin nhắn.
// Sau khi ghi, lastMessage của hội thoại được cập nhật; nếu tin nhắn
// từ khách hàng thì unread được tăng nguyên tử bằng $inc.
func (s *MessageService) Create(ctx context.Context, ownerID primitive.ObjectID, input dto.MessageCreateInput) (models.Message, error) {
	conversationID, err := primitive.ObjectIDFromHex(input.ConversationID)
	if err != nil {
		return models.Message{}, common.NewError(common.ErrCodeValidationInput,
			"conversationId không đúng định dạng", common.StatusBadRequest, err)
	}

	if !models.IsValidSender(input.Sender) {
		return models.Message{}, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Sender không hợp lệ: %s", input.Sender), common.StatusBadRequest, nil)
	}

	attachments, err := toAttachments(input.Attachments)
	if err != nil {
		return models.Message{}, err
	}

	// Hội thoại phải tồn tại và thuộc tenant hiện tại
	convFilter := bson.M{"_id": conversationID, "ownerId": ownerID}
	if _, err := s.conversations.FindOne(ctx, convFilter, nil); err != nil {
		return models.Message{}, err
	}

	message := models.Message{
		ConversationID: conversationID,
		Text:           input.Text,
		Sender:         input.Sender,
		Tags:           input.Tags,
		Attachments:    attachments,
		OwnerID:        ownerID,
	}

	created, err := s.InsertOne(ctx, message)
	if err != nil {
		return models.Message{}, err
	}

	update := &basesvc.UpdateData{
		Set: map[string]interface{}{"lastMessage": input.Text},
	}
	if input.Sender == models.SenderCustomer {
		update.Inc = map[string]interface{}{"unread": int64(1)}
	}

	if _, err := s.conversations.FindOneAndUpdate(ctx, convFilter, update, nil); err != nil {
		return models.Message{}, err
	}

	return created, nil
}

// UpdateFields cập nhật tags và attachments của tin nhắn.
// Nội dung, sender và hội thoại của tin nhắn không thay đổi sau khi tạo.
// lastMessage của hội thoại không được tính lại khi sửa tin nhắn.
func (s *MessageService) UpdateFields(ctx context.Context, ownerID primitive.ObjectID, id primitive.ObjectID, input dto.MessageUpdateInput) (models.Message, error) {
	set := map[string]interface{}{}
	if input.Tags != nil {
		set["tags"] = *input.Tags
	}
	if input.Attachments != nil {
		attachments, err := toAttachments(*input.Attachments)
		if err != nil {
			return models.Message{}, err
		}
		set["attachments"] = attachments
	}

	filter := bson.M{"_id": id, "ownerId": ownerID}
	return s.FindOneAndUpdate(ctx, filter, basesvc.ToUpdateData(set), nil)
}

// Delete xóa một tin nhắn của tenant.
// lastMessage của hội thoại giữ nguyên giá trị cũ, kể cả khi tin nhắn
// vừa xóa là tin mới nhất.
func (s *MessageService) Delete(ctx context.Context, ownerID primitive.ObjectID, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "ownerId": ownerID}
	if _, err := s.FindOneAndDelete(ctx, filter); err != nil {
		return err
	}
	return nil
}
