package service

import "testing"

func TestToUpdateData_ChiDungPhepToanSet(t *testing.T) {
	data := map[string]interface{}{
		"pinned": true,
		"unread": int64(0),
	}

	update := ToUpdateData(data)

	if len(update.Set) != len(data) {
		t.Fatalf("Set phải chứa đủ %d field, nhận được %d", len(data), len(update.Set))
	}
	for key, want := range data {
		if got, ok := update.Set[key]; !ok || got != want {
			t.Errorf("Set[%q] phải là %v, nhận được %v", key, want, got)
		}
	}

	if update.SetOnInsert != nil {
		t.Error("SetOnInsert phải nil khi chỉ chuyển từ map thường")
	}
	if update.Unset != nil {
		t.Error("Unset phải nil khi chỉ chuyển từ map thường")
	}
	if update.Inc != nil {
		t.Error("Inc phải nil khi chỉ chuyển từ map thường")
	}
}
