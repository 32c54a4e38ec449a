package service

import (
	"context"

	"omni_inbox/internal/api/inbox/dto"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// closingTags là các tag đánh dấu tin nhắn chốt đơn.
// Một hội thoại có ít nhất một tin nhắn mang tag này được tính là đơn đã chốt.
var closingTags = []string{"sales", "order-closed"}

// IsClosingTag kiểm tra một tag có phải tag chốt đơn không
func IsClosingTag(tag string) bool {
	for _, t := range closingTags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasClosingTag kiểm tra danh sách tag có chứa tag chốt đơn không
func HasClosingTag(tags []string) bool {
	for _, tag := range tags {
		if IsClosingTag(tag) {
			return true
		}
	}
	return false
}

// GetStats tổng hợp số liệu của một nền tảng cho tenant:
// tổng số tin nhắn, số đơn đã chốt và tổng số hội thoại.
func (s *ConversationService) GetStats(ctx context.Context, ownerID primitive.ObjectID, platform string) (dto.StatsResponse, error) {
	convFilter := bson.M{"ownerId": ownerID, "platform": platform}

	conversations, err := s.Find(ctx, convFilter, nil)
	if err != nil {
		return dto.StatsResponse{}, err
	}

	ids := make([]primitive.ObjectID, 0, len(conversations))
	for _, conv := range conversations {
		ids = append(ids, conv.ID)
	}

	stats := dto.StatsResponse{
		TotalConversations: int64(len(conversations)),
	}
	if len(ids) == 0 {
		return stats, nil
	}

	msgFilter := bson.M{"conversationId": bson.M{"$in": ids}}
	totalMessages, err := s.messages.CountDocuments(ctx, msgFilter)
	if err != nil {
		return dto.StatsResponse{}, err
	}
	stats.TotalMessages = totalMessages

	// Mỗi hội thoại chỉ tính một đơn dù có nhiều tin nhắn mang tag chốt
	closedFilter := bson.M{
		"conversationId": bson.M{"$in": ids},
		"tags":           bson.M{"$in": closingTags},
	}
	closedConversations, err := s.messages.Distinct(ctx, "conversationId", closedFilter)
	if err != nil {
		return dto.StatsResponse{}, err
	}
	stats.ClosedOrders = int64(len(closedConversations))

	return stats, nil
}
