package utility

import (
	"fmt"
	"time"
)

// FormatRelativeTime trả về nhãn thời gian tương đối cho một mốc UnixMilli
// so với thời điểm hiện tại.
func FormatRelativeTime(unixMilli int64) string {
	return FormatRelativeTimeSince(unixMilli, time.Now().UnixMilli())
}

// FormatRelativeTimeSince trả về nhãn thời gian tương đối giữa hai mốc UnixMilli:
// "N days ago", "N hours ago", "N minutes ago", hoặc "just now" nếu dưới một phút.
func FormatRelativeTimeSince(unixMilli int64, nowMilli int64) string {
	diff := time.Duration(nowMilli-unixMilli) * time.Millisecond

	if days := int64(diff.Hours() / 24); days > 0 {
		return fmt.Sprintf("%d days ago", days)
	}
	if hours := int64(diff.Hours()); hours > 0 {
		return fmt.Sprintf("%d hours ago", hours)
	}
	if minutes := int64(diff.Minutes()); minutes > 0 {
		return fmt.Sprintf("%d minutes ago", minutes)
	}
	return "just now"
}
