package logger

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncHook xử lý ghi log bất đồng bộ qua channel,
// tránh block luồng xử lý request khi ghi file chậm.
type AsyncHook struct {
	entries   chan *logrus.Entry
	out       io.Writer
	formatter logrus.Formatter
	wg        sync.WaitGroup
	closeOnce sync.Once
	done      chan struct{}
}

// NewAsyncHook tạo hook bất đồng bộ với buffer cho trước.
// Logger chính sẽ SetOutput(io.Discard), mọi ghi thực đi qua hook này.
func NewAsyncHook(out io.Writer, formatter logrus.Formatter, bufferSize int) *AsyncHook {
	hook := &AsyncHook{
		entries:   make(chan *logrus.Entry, bufferSize),
		out:       out,
		formatter: formatter,
		done:      make(chan struct{}),
	}

	hook.wg.Add(1)
	go hook.processEntries()

	return hook
}

// Levels trả về các level mà hook xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đẩy entry vào channel, không block.
// Nếu buffer đầy thì bỏ qua entry để bảo vệ luồng chính.
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	select {
	case h.entries <- entry.Dup():
	default:
		// Buffer đầy, bỏ entry
	}
	return nil
}

// processEntries xử lý các entry từ channel và ghi ra output thực
func (h *AsyncHook) processEntries() {
	defer h.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("AsyncHook panic: %v\n", r)
		}
	}()

	for {
		select {
		case entry, ok := <-h.entries:
			if !ok {
				return
			}
			h.writeEntry(entry)
		case <-h.done:
			// Xả hết các entry còn lại trước khi dừng
			for {
				select {
				case entry, ok := <-h.entries:
					if !ok {
						return
					}
					h.writeEntry(entry)
				default:
					return
				}
			}
		}
	}
}

// writeEntry ghi một entry ra output thực
func (h *AsyncHook) writeEntry(entry *logrus.Entry) {
	serialized, err := h.formatter.Format(entry)
	if err != nil {
		fmt.Printf("AsyncHook format error: %v\n", err)
		return
	}

	if _, err := h.out.Write(serialized); err != nil {
		fmt.Printf("AsyncHook write error: %v\n", err)
	}
}

// Close dừng hook và xả hết log còn trong buffer
func (h *AsyncHook) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
		h.wg.Wait()
	})
}
