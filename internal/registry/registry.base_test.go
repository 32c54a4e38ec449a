package registry

import "testing"

func TestRegistry_RegisterVaGet(t *testing.T) {
	r := NewRegistry[string]()

	isNew, err := r.Register("a", "giá trị a")
	if err != nil {
		t.Fatalf("Register trả về lỗi: %v", err)
	}
	if !isNew {
		t.Error("Đăng ký lần đầu phải trả về isNew = true")
	}

	// Đăng ký lại cùng tên sẽ ghi đè item cũ
	isNew, err = r.Register("a", "giá trị mới")
	if err != nil {
		t.Fatalf("Register lần hai trả về lỗi: %v", err)
	}
	if isNew {
		t.Error("Đăng ký trùng tên phải trả về isNew = false")
	}

	item, exists := r.Get("a")
	if !exists {
		t.Fatal("Không tìm thấy item đã đăng ký")
	}
	if item != "giá trị mới" {
		t.Errorf("Đăng ký trùng tên phải ghi đè item cũ, nhận được %q", item)
	}
}

func TestRegistry_TenRong(t *testing.T) {
	r := NewRegistry[int]()
	if _, err := r.Register("", 1); err == nil {
		t.Error("Đăng ký với tên rỗng phải trả về lỗi")
	}
}

func TestRegistry_GetKhongTonTai(t *testing.T) {
	r := NewRegistry[int]()
	if _, exists := r.Get("không có"); exists {
		t.Error("Get với tên chưa đăng ký phải trả về exists = false")
	}
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry[string]()

	item, err := r.GetOrCreate("a", func() (string, error) { return "tạo mới", nil })
	if err != nil {
		t.Fatalf("GetOrCreate trả về lỗi: %v", err)
	}
	if item != "tạo mới" {
		t.Errorf("GetOrCreate không trả về giá trị vừa tạo: %q", item)
	}

	// Lần hai phải trả về item đã có, không gọi lại creator
	item, err = r.GetOrCreate("a", func() (string, error) { return "không được tạo", nil })
	if err != nil {
		t.Fatalf("GetOrCreate lần hai trả về lỗi: %v", err)
	}
	if item != "tạo mới" {
		t.Errorf("GetOrCreate gọi lại creator cho item đã tồn tại: %q", item)
	}
}

func TestRegistry_ClearAll(t *testing.T) {
	r := NewRegistry[int]()
	_, _ = r.Register("a", 1)
	_, _ = r.Register("b", 2)

	count, err := r.ClearAll(nil)
	if err != nil {
		t.Fatalf("ClearAll trả về lỗi: %v", err)
	}
	if count != 2 {
		t.Errorf("ClearAll phải xóa 2 items, đã xóa %d", count)
	}
	if _, exists := r.Get("a"); exists {
		t.Error("Item vẫn còn sau khi ClearAll")
	}
}

func TestRegistry_Clear(t *testing.T) {
	r := NewRegistry[string]()
	_, _ = r.Register("x", "1")

	deleted, err := r.Clear("x", nil)
	if err != nil {
		t.Fatalf("Clear trả về lỗi: %v", err)
	}
	if !deleted {
		t.Error("Clear item tồn tại phải trả về deleted = true")
	}

	if _, exists := r.Get("x"); exists {
		t.Error("Item vẫn còn sau khi Clear")
	}
}
