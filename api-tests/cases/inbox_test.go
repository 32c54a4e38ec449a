package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"omni_inbox_tests/utils"

	"github.com/stretchr/testify/assert"
)

// TestInboxModule kiểm tra toàn bộ API của module inbox:
// vòng đời hội thoại, tin nhắn, bộ đếm unread, stats và cách ly tenant.
func TestInboxModule(t *testing.T) {
	baseURL := "http://localhost:8080/api/v1"
	waitForHealth(baseURL, 10, 1*time.Second, t)

	tenantID := newTenantID()
	client := utils.NewHTTPClient(baseURL, 10)
	client.SetTenantID(tenantID)

	var conversationID string

	t.Run("💬 Conversation CRUD", func(t *testing.T) {
		t.Run("CREATE - Tạo hội thoại mới", func(t *testing.T) {
			payload := map[string]interface{}{
				"platform":     "facebook",
				"customerName": fmt.Sprintf("Khách hàng test %d", time.Now().UnixNano()),
				"online":       true,
			}

			resp, body, err := client.POST("/conversations", payload)
			if err != nil {
				t.Fatalf("❌ Lỗi khi tạo hội thoại: %v", err)
			}
			assert.Equal(t, http.StatusCreated, resp.StatusCode, "Tạo hội thoại phải trả về 201, body: %s", string(body))

			var result map[string]interface{}
			err = json.Unmarshal(body, &result)
			assert.NoError(t, err, "Phải parse được JSON response")

			if id, ok := result["id"].(string); ok {
				conversationID = id
			}
			assert.NotEmpty(t, conversationID, "Response phải chứa id")

			// Trạng thái ban đầu
			assert.Equal(t, float64(0), result["unread"], "Hội thoại mới phải có unread = 0")
			assert.Equal(t, false, result["pinned"], "Hội thoại mới phải chưa được ghim")
			assert.Equal(t, "", result["lastMessage"], "Hội thoại mới phải có lastMessage rỗng")

			// Không gửi avatar thì phải sinh placeholder từ tên
			avatar, _ := result["customerAvatar"].(string)
			assert.True(t, strings.HasPrefix(avatar, "https://ui-avatars.com/"), "Avatar placeholder không đúng: %s", avatar)
		})

		t.Run("CREATE - Platform không hợp lệ", func(t *testing.T) {
			payload := map[string]interface{}{
				"platform":     "instagram",
				"customerName": "Khách hàng",
			}

			resp, body, err := client.POST("/conversations", payload)
			if err != nil {
				t.Fatalf("❌ Lỗi request: %v", err)
			}
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "Platform lạ phải bị chặn với 400")

			var result map[string]interface{}
			json.Unmarshal(body, &result)
			assert.NotEmpty(t, result["message"], "Response lỗi phải có message")
		})

		t.Run("CREATE - Thiếu customerName", func(t *testing.T) {
			payload := map[string]interface{}{
				"platform": "facebook",
			}

			resp, _, err := client.POST("/conversations", payload)
			if err != nil {
				t.Fatalf("❌ Lỗi request: %v", err)
			}
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "Thiếu customerName phải bị chặn với 400")
		})

		t.Run("LIST - Danh sách hội thoại", func(t *testing.T) {
			resp, body, err := client.GET("/conversations?platform=facebook")
			if err != nil {
				t.Fatalf("❌ Lỗi khi lấy danh sách: %v", err)
			}
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var items []map[string]interface{}
			err = json.Unmarshal(body, &items)
			assert.NoError(t, err, "Danh sách phải là JSON array")
			assert.Len(t, items, 1, "Tenant mới chỉ có một hội thoại")

			item := items[0]
			assert.Equal(t, float64(0), item["messageCount"], "Hội thoại mới chưa có tin nhắn")
			assert.NotNil(t, item["messages"], "Trường messages phải là mảng")
			assert.NotEmpty(t, item["time"], "Phải có nhãn thời gian tương đối")
		})

		t.Run("LIST - Platform không hợp lệ", func(t *testing.T) {
			resp, _, err := client.GET("/conversations?platform=viber")
			if err != nil {
				t.Fatalf("❌ Lỗi request: %v", err)
			}
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "Platform lạ phải bị chặn với 400")
		})

		t.Run("UPDATE - Ghim hội thoại", func(t *testing.T) {
			payload := map[string]interface{}{"pinned": true}

			resp, body, err := client.PUT("/conversations/"+conversationID, payload)
			if err != nil {
				t.Fatalf("❌ Lỗi khi cập nhật: %v", err)
			}
			assert.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", string(body))

			var result map[string]interface{}
			json.Unmarshal(body, &result)
			assert.Equal(t, true, result["pinned"], "Hội thoại phải được ghim sau khi cập nhật")
		})
	})

	t.Run("✉️ Message và bộ đếm unread", func(t *testing.T) {
		t.Run("CREATE - Tin nhắn từ khách hàng tăng unread", func(t *testing.T) {
			payload := map[string]interface{}{
				"conversationId": conversationID,
				"text":           "Hi",
				"sender":         "customer",
			}

			resp, body, err := client.POST("/messages", payload)
			if err != nil {
				t.Fatalf("❌ Lỗi khi tạo tin nhắn: %v", err)
			}
			assert.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", string(body))

			var result map[string]interface{}
			json.Unmarshal(body, &result)
			assert.Equal(t, "user", result["sender"], "Tin nhắn của khách phải trả về sender 'user'")

			// Hội thoại phải được cập nhật: unread 1, lastMessage "Hi"
			_, listBody, err := client.GET("/conversations?platform=facebook")
			assert.NoError(t, err)
			var items []map[string]interface{}
			json.Unmarshal(listBody, &items)
			if assert.Len(t, items, 1) {
				assert.Equal(t, float64(1), items[0]["unread"], "Tin nhắn từ khách phải tăng unread")
				assert.Equal(t, "Hi", items[0]["lastMessage"], "lastMessage phải là nội dung tin mới nhất")
			}
		})

		t.Run("CREATE - Tin nhắn trả lời không tăng unread", func(t *testing.T) {
			payload := map[string]interface{}{
				"conversationId": conversationID,
				"text":           "Chào anh, em hỗ trợ gì được ạ?",
				"sender":         "user",
			}

			resp, body, err := client.POST("/messages", payload)
			if err != nil {
				t.Fatalf("❌ Lỗi khi tạo tin nhắn: %v", err)
			}
			assert.Equal(t, http.StatusCreated, resp.StatusCode)

			var result map[string]interface{}
			json.Unmarshal(body, &result)
			assert.Equal(t, "me", result["sender"], "Tin nhắn của nhân viên phải trả về sender 'me'")

			_, listBody, _ := client.GET("/conversations?platform=facebook")
			var items []map[string]interface{}
			json.Unmarshal(listBody, &items)
			if assert.Len(t, items, 1) {
				assert.Equal(t, float64(1), items[0]["unread"], "Tin nhắn trả lời không được tăng unread")
			}
		})

		t.Run("CREATE - Tin nhắn kèm attachment", func(t *testing.T) {
			payload := map[string]interface{}{
				"conversationId": conversationID,
				"text":           "Em gửi anh báo giá ạ",
				"sender":         "user",
				"attachments": []map[string]interface{}{
					{"type": "file", "url": "https://cdn.example.com/bao-gia.pdf", "name": "bao-gia.pdf"},
				},
			}

			resp, body, err := client.POST("/messages", payload)
			if err != nil {
				t.Fatalf("❌ Lỗi khi tạo tin nhắn: %v", err)
			}
			assert.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", string(body))

			var result map[string]interface{}
			json.Unmarshal(body, &result)
			attachments, _ := result["attachments"].([]interface{})
			if assert.Len(t, attachments, 1, "Response phải chứa attachment vừa gửi") {
				att, _ := attachments[0].(map[string]interface{})
				assert.Equal(t, "file", att["type"])
			}

			// Dọn lại để các bước sau đếm tin nhắn không bị lệch
			messageID, _ := result["id"].(string)
			if messageID != "" {
				client.DELETE("/messages/" + messageID)
			}
		})

		t.Run("CREATE - Loại attachment không hợp lệ", func(t *testing.T) {
			payload := map[string]interface{}{
				"conversationId": conversationID,
				"text":           "file lạ",
				"sender":         "user",
				"attachments": []map[string]interface{}{
					{"type": "video", "url": "https://cdn.example.com/clip.mp4", "name": "clip.mp4"},
				},
			}

			resp, _, err := client.POST("/messages", payload)
			if err != nil {
				t.Fatalf("❌ Lỗi request: %v", err)
			}
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "Loại attachment lạ phải bị chặn với 400")
		})

		t.Run("CREATE - Hội thoại không tồn tại", func(t *testing.T) {
			payload := map[string]interface{}{
				"conversationId": newTenantID(), // hex hợp lệ nhưng không tồn tại
				"text":           "lạc trôi",
				"sender":         "customer",
			}

			resp, _, err := client.POST("/messages", payload)
			if err != nil {
				t.Fatalf("❌ Lỗi request: %v", err)
			}
			assert.Equal(t, http.StatusNotFound, resp.StatusCode, "Tin nhắn vào hội thoại không tồn tại phải trả về 404")
		})

		t.Run("READ - Mở hội thoại reset unread", func(t *testing.T) {
			resp, body, err := client.GET("/conversations/" + conversationID)
			if err != nil {
				t.Fatalf("❌ Lỗi khi mở hội thoại: %v", err)
			}
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var result map[string]interface{}
			json.Unmarshal(body, &result)
			assert.Equal(t, float64(0), result["unread"], "Mở hội thoại phải reset unread về 0")

			messages, ok := result["messages"].([]interface{})
			if assert.True(t, ok, "Response phải có mảng messages") {
				assert.Len(t, messages, 2, "Hội thoại có 2 tin nhắn")
				first, _ := messages[0].(map[string]interface{})
				last, _ := messages[1].(map[string]interface{})
				assert.Equal(t, "Hi", first["text"], "Tin nhắn phải sắp xếp theo thời gian tăng dần")
				assert.Equal(t, "me", last["sender"], "Tin trả lời phải có sender 'me'")
			}

			// Mở lại lần nữa không có tác dụng phụ
			_, body2, _ := client.GET("/conversations/" + conversationID)
			var result2 map[string]interface{}
			json.Unmarshal(body2, &result2)
			assert.Equal(t, float64(0), result2["unread"], "Mở lại hội thoại đã đọc vẫn giữ unread = 0")
		})

		t.Run("UPDATE - Gắn tag chốt đơn", func(t *testing.T) {
			// Lấy ID tin nhắn đầu tiên từ detail
			_, body, _ := client.GET("/conversations/" + conversationID)
			var detail map[string]interface{}
			json.Unmarshal(body, &detail)
			messages, _ := detail["messages"].([]interface{})
			if len(messages) == 0 {
				t.Skip("Skipping: Chưa có tin nhắn")
			}
			first, _ := messages[0].(map[string]interface{})
			messageID, _ := first["id"].(string)

			payload := map[string]interface{}{
				"tags": []string{"sales"},
			}

			resp, updBody, err := client.PUT("/messages/"+messageID, payload)
			if err != nil {
				t.Fatalf("❌ Lỗi khi cập nhật tin nhắn: %v", err)
			}
			assert.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", string(updBody))

			var result map[string]interface{}
			json.Unmarshal(updBody, &result)
			tags, _ := result["tags"].([]interface{})
			assert.Contains(t, tags, "sales", "Tin nhắn phải mang tag vừa gắn")
			assert.Equal(t, "Hi", result["text"], "Text không được thay đổi khi cập nhật tags")
		})
	})

	t.Run("📊 Stats", func(t *testing.T) {
		resp, body, err := client.GET("/messages/stats?platform=facebook")
		if err != nil {
			t.Fatalf("❌ Lỗi khi lấy stats: %v", err)
		}
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var stats map[string]interface{}
		json.Unmarshal(body, &stats)
		assert.Equal(t, float64(2), stats["totalMessages"], "Tenant có 2 tin nhắn")
		assert.Equal(t, float64(1), stats["closedOrders"], "Hội thoại có tag chốt đơn phải tính là 1 đơn")
		assert.Equal(t, float64(1), stats["totalConversations"], "Tenant có 1 hội thoại")

		// Platform không hợp lệ
		resp, _, _ = client.GET("/messages/stats?platform=viber")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "Platform lạ phải bị chặn với 400")
	})

	t.Run("🔒 Cách ly tenant", func(t *testing.T) {
		otherClient := utils.NewHTTPClient(baseURL, 10)
		otherClient.SetTenantID(newTenantID())

		resp, _, err := otherClient.GET("/conversations/" + conversationID)
		if err != nil {
			t.Fatalf("❌ Lỗi request: %v", err)
		}
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "Tenant khác không được thấy hội thoại, kể cả sự tồn tại của nó")

		resp, _, _ = otherClient.PUT("/conversations/"+conversationID, map[string]interface{}{"pinned": true})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "Tenant khác không được cập nhật hội thoại")

		// Thiếu header tenant
		noTenant := utils.NewHTTPClient(baseURL, 10)
		resp, _, _ = noTenant.GET("/conversations?platform=facebook")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "Thiếu X-Tenant-ID phải bị chặn với 401")
	})

	t.Run("🗑️ Xóa tin nhắn và hội thoại", func(t *testing.T) {
		t.Run("DELETE - Xóa tin nhắn không tính lại lastMessage", func(t *testing.T) {
			_, body, _ := client.GET("/conversations/" + conversationID)
			var detail map[string]interface{}
			json.Unmarshal(body, &detail)
			messages, _ := detail["messages"].([]interface{})
			if len(messages) < 2 {
				t.Skip("Skipping: Không đủ tin nhắn")
			}
			last, _ := messages[len(messages)-1].(map[string]interface{})
			lastID, _ := last["id"].(string)

			resp, delBody, err := client.DELETE("/messages/" + lastID)
			if err != nil {
				t.Fatalf("❌ Lỗi khi xóa tin nhắn: %v", err)
			}
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var result map[string]interface{}
			json.Unmarshal(delBody, &result)
			assert.Equal(t, "deleted", result["message"], "Xóa thành công phải trả về {message: deleted}")

			// lastMessage giữ nguyên giá trị cũ
			_, listBody, _ := client.GET("/conversations?platform=facebook")
			var items []map[string]interface{}
			json.Unmarshal(listBody, &items)
			if assert.Len(t, items, 1) {
				assert.NotEmpty(t, items[0]["lastMessage"], "lastMessage không được tính lại sau khi xóa tin nhắn")
			}
		})

		t.Run("DELETE - Xóa hội thoại cascade tin nhắn", func(t *testing.T) {
			resp, body, err := client.DELETE("/conversations/" + conversationID)
			if err != nil {
				t.Fatalf("❌ Lỗi khi xóa hội thoại: %v", err)
			}
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var result map[string]interface{}
			json.Unmarshal(body, &result)
			assert.Equal(t, "deleted", result["message"])

			// Hội thoại và tin nhắn không còn truy cập được
			resp, _, _ = client.GET("/conversations/" + conversationID)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode, "Hội thoại đã xóa phải trả về 404")

			_, statsBody, _ := client.GET("/messages/stats?platform=facebook")
			var stats map[string]interface{}
			json.Unmarshal(statsBody, &stats)
			assert.Equal(t, float64(0), stats["totalMessages"], "Tin nhắn phải bị xóa cascade theo hội thoại")
			assert.Equal(t, float64(0), stats["totalConversations"], "Không còn hội thoại nào")
		})
	})
}

// TestInboxListOrdering kiểm tra thứ tự danh sách hội thoại:
// ghim trước, rồi unread, rồi hoạt động gần nhất, và thứ tự ổn định giữa các lần gọi.
func TestInboxListOrdering(t *testing.T) {
	baseURL := "http://localhost:8080/api/v1"
	waitForHealth(baseURL, 10, 1*time.Second, t)

	client := utils.NewHTTPClient(baseURL, 10)
	client.SetTenantID(newTenantID())

	createConversation := func(name string) string {
		payload := map[string]interface{}{
			"platform":     "zalo",
			"customerName": name,
		}
		resp, body, err := client.POST("/conversations", payload)
		if err != nil {
			t.Fatalf("❌ Lỗi khi tạo hội thoại %s: %v", name, err)
		}
		assert.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", string(body))

		var result map[string]interface{}
		json.Unmarshal(body, &result)
		id, _ := result["id"].(string)
		assert.NotEmpty(t, id, "Response phải chứa id")
		return id
	}

	listIDs := func() []string {
		resp, body, err := client.GET("/conversations?platform=zalo")
		if err != nil {
			t.Fatalf("❌ Lỗi khi lấy danh sách: %v", err)
		}
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var items []map[string]interface{}
		json.Unmarshal(body, &items)
		ids := make([]string, 0, len(items))
		for _, item := range items {
			id, _ := item["id"].(string)
			ids = append(ids, id)
		}
		return ids
	}

	// A tạo trước, D tạo sau cùng; B được ghim; C có tin chưa đọc
	idA := createConversation("Khách A")
	idB := createConversation("Khách B")
	idC := createConversation("Khách C")
	idD := createConversation("Khách D")

	resp, body, err := client.PUT("/conversations/"+idB, map[string]interface{}{"pinned": true})
	if err != nil {
		t.Fatalf("❌ Lỗi khi ghim hội thoại: %v", err)
	}
	assert.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", string(body))

	resp, body, err = client.POST("/messages", map[string]interface{}{
		"conversationId": idC,
		"text":           "Shop ơi còn hàng không?",
		"sender":         "customer",
	})
	if err != nil {
		t.Fatalf("❌ Lỗi khi tạo tin nhắn: %v", err)
	}
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", string(body))

	t.Run("Ghim > unread > hoạt động gần nhất", func(t *testing.T) {
		ids := listIDs()
		expected := []string{idB, idC, idD, idA}
		assert.Equal(t, expected, ids, "Thứ tự phải là: ghim, unread, rồi theo hoạt động gần nhất giảm dần")
	})

	t.Run("Gọi lặp lại trả về thứ tự giống hệt", func(t *testing.T) {
		first := listIDs()
		second := listIDs()
		assert.Equal(t, first, second, "Hai lần gọi liên tiếp phải trả về cùng một thứ tự")
	})
}
