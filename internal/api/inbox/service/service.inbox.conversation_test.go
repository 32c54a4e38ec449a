package service

import "testing"

func TestListSortOrder_DayDuKhoaSapXep(t *testing.T) {
	sort := listSortOrder()

	wantKeys := []string{"pinned", "unread", "updatedAt", "_id"}
	if len(sort) != len(wantKeys) {
		t.Fatalf("Sort phải có %d khóa, nhận được %d", len(wantKeys), len(sort))
	}

	for i, want := range wantKeys {
		if sort[i].Key != want {
			t.Errorf("Khóa sắp xếp vị trí %d phải là %q, nhận được %q", i, want, sort[i].Key)
		}
		if sort[i].Value != -1 {
			t.Errorf("Khóa %q phải sắp xếp giảm dần (-1), nhận được %v", sort[i].Key, sort[i].Value)
		}
	}
}

func TestListSortOrder_CoKhoaPhuOnDinh(t *testing.T) {
	sort := listSortOrder()

	// Khóa cuối phải là _id: ba khóa đầu có thể trùng nhau giữa hai hội thoại
	// (timestamp UnixMilli), không có _id thì thứ tự trả về không xác định
	last := sort[len(sort)-1]
	if last.Key != "_id" {
		t.Errorf("Khóa sắp xếp cuối cùng phải là _id để thứ tự ổn định, nhận được %q", last.Key)
	}
}
