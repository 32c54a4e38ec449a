package utility

import (
	"testing"
	"time"
)

func TestFormatRelativeTimeSince(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).UnixMilli()

	cases := []struct {
		name     string
		agoMilli int64
		want     string
	}{
		{"dưới một phút", 30 * 1000, "just now"},
		{"đúng biên một phút", 60 * 1000, "1 minutes ago"},
		{"vài phút", 5 * 60 * 1000, "5 minutes ago"},
		{"dưới một ngày", 3 * 60 * 60 * 1000, "3 hours ago"},
		{"một ngày", 24 * 60 * 60 * 1000, "1 days ago"},
		{"nhiều ngày", 72 * 60 * 60 * 1000, "3 days ago"},
	}

	for _, tc := range cases {
		got := FormatRelativeTimeSince(now-tc.agoMilli, now)
		if got != tc.want {
			t.Errorf("%s: FormatRelativeTimeSince trả về %q, mong đợi %q", tc.name, got, tc.want)
		}
	}
}

func TestFormatRelativeTimeSince_MocHienTai(t *testing.T) {
	now := time.Now().UnixMilli()
	if got := FormatRelativeTimeSince(now, now); got != "just now" {
		t.Errorf("Mốc thời gian hiện tại phải là 'just now', nhận được %q", got)
	}
}
