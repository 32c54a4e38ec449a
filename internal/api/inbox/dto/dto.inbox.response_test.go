package dto

import (
	"testing"

	"omni_inbox/internal/api/inbox/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWireSender(t *testing.T) {
	if got := WireSender(models.SenderUser); got != "me" {
		t.Errorf("Sender lưu trữ 'user' phải trả về 'me', nhận được %q", got)
	}
	if got := WireSender(models.SenderCustomer); got != "user" {
		t.Errorf("Sender lưu trữ 'customer' phải trả về 'user', nhận được %q", got)
	}
	// Giá trị lạ giữ nguyên, không map nhầm
	if got := WireSender("bot"); got != "bot" {
		t.Errorf("Sender không xác định phải giữ nguyên, nhận được %q", got)
	}
}

func TestNewMessageResponse_MangKhongNull(t *testing.T) {
	m := models.Message{
		ID:             primitive.NewObjectID(),
		ConversationID: primitive.NewObjectID(),
		Text:           "xin chào",
		Sender:         models.SenderCustomer,
	}

	resp := NewMessageResponse(m)

	if resp.Tags == nil {
		t.Error("Tags phải là mảng rỗng, không được null")
	}
	if resp.Attachments == nil {
		t.Error("Attachments phải là mảng rỗng, không được null")
	}
	if resp.Sender != "user" {
		t.Errorf("Tin nhắn của khách hàng phải có sender 'user', nhận được %q", resp.Sender)
	}
	if resp.Text != "xin chào" {
		t.Errorf("Text bị thay đổi: %q", resp.Text)
	}
}

func TestNewMessageResponses_GiuThuTu(t *testing.T) {
	messages := []models.Message{
		{Text: "1", Sender: models.SenderCustomer},
		{Text: "2", Sender: models.SenderUser},
		{Text: "3", Sender: models.SenderCustomer},
	}

	responses := NewMessageResponses(messages)

	if len(responses) != 3 {
		t.Fatalf("Mong đợi 3 responses, nhận được %d", len(responses))
	}
	for i, want := range []string{"1", "2", "3"} {
		if responses[i].Text != want {
			t.Errorf("Thứ tự tin nhắn bị đảo tại vị trí %d: %q", i, responses[i].Text)
		}
	}
	if responses[1].Sender != "me" {
		t.Errorf("Tin nhắn của nhân viên phải có sender 'me', nhận được %q", responses[1].Sender)
	}
}

func TestNewMessageResponses_DanhSachRong(t *testing.T) {
	responses := NewMessageResponses(nil)
	if responses == nil {
		t.Error("Danh sách rỗng phải trả về slice rỗng, không được nil")
	}
	if len(responses) != 0 {
		t.Errorf("Mong đợi slice rỗng, nhận được %d phần tử", len(responses))
	}
}
