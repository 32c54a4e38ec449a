package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

// waitForHealth chờ server sẵn sàng trước khi chạy test.
// Fail test nếu server không healthy sau số lần retry cho trước.
func waitForHealth(baseURL string, retries int, interval time.Duration, t *testing.T) {
	healthURL := baseURL + "/system/health"
	client := &http.Client{Timeout: 3 * time.Second}

	for i := 0; i < retries; i++ {
		resp, err := client.Get(healthURL)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(interval)
	}

	t.Fatalf("❌ Server không sẵn sàng tại %s sau %d lần thử", healthURL, retries)
}

// newTenantID sinh một tenant ID dạng hex ObjectID (24 ký tự) duy nhất cho mỗi lần chạy
func newTenantID() string {
	return fmt.Sprintf("%024x", time.Now().UnixNano())
}
