package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// loggers chứa các logger theo tên (app, audit, error)
	loggers = make(map[string]*logrus.Logger)
	// hooks giữ tham chiếu để đóng khi shutdown
	hooks = make(map[string]*AsyncHook)
	mu    sync.RWMutex

	// rootDir là thư mục gốc chứa thư mục logs
	rootDir string

	// cfg là cấu hình logging hiện hành
	cfg *LogConfig
)

// Init khởi tạo hệ thống logging với cấu hình cho trước.
// Nếu config nil thì dùng DefaultConfig().
func Init(config *LogConfig) error {
	if config == nil {
		config = DefaultConfig()
	}

	mu.Lock()
	cfg = config
	mu.Unlock()

	if err := initRootDir(); err != nil {
		return fmt.Errorf("không khởi tạo được thư mục log: %w", err)
	}

	// Tạo sẵn các logger chính
	for _, name := range []string{"app", "audit", "error"} {
		if _, err := getOrCreateLogger(name); err != nil {
			return err
		}
	}

	return nil
}

// initRootDir xác định thư mục gốc để đặt thư mục logs.
// Ưu tiên LOG_ROOT_DIR, sau đó đi từ thư mục executable lên trên
// để tìm thư mục chứa logs hoặc config.
func initRootDir() error {
	if dir := os.Getenv("LOG_ROOT_DIR"); dir != "" {
		rootDir = dir
		return os.MkdirAll(filepath.Join(rootDir, "logs"), 0755)
	}

	exePath, err := os.Executable()
	if err != nil {
		rootDir = "."
	} else {
		dir := filepath.Dir(exePath)
		found := false
		for i := 0; i < 5; i++ {
			if _, err := os.Stat(filepath.Join(dir, "logs")); err == nil {
				found = true
				break
			}
			if _, err := os.Stat(filepath.Join(dir, "config")); err == nil {
				found = true
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
		if found {
			rootDir = dir
		} else {
			rootDir = "."
		}
	}

	return os.MkdirAll(filepath.Join(rootDir, "logs"), 0755)
}

// GetLogger trả về logger theo tên, tạo mới nếu chưa có
func GetLogger(name string) *logrus.Logger {
	logger, err := getOrCreateLogger(name)
	if err != nil {
		// Fallback về logger chuẩn nếu tạo thất bại
		fallback := logrus.StandardLogger()
		fallback.Warnf("Không tạo được logger '%s': %v", name, err)
		return fallback
	}
	return logger
}

// GetAppLogger trả về logger ứng dụng
func GetAppLogger() *logrus.Logger {
	return GetLogger("app")
}

// GetAuditLogger trả về logger audit
func GetAuditLogger() *logrus.Logger {
	return GetLogger("audit")
}

// GetErrorLogger trả về logger lỗi
func GetErrorLogger() *logrus.Logger {
	return GetLogger("error")
}

func getOrCreateLogger(name string) (*logrus.Logger, error) {
	mu.RLock()
	if logger, ok := loggers[name]; ok {
		mu.RUnlock()
		return logger, nil
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// Kiểm tra lại sau khi giữ write lock
	if logger, ok := loggers[name]; ok {
		return logger, nil
	}

	logger, hook, err := createLogger(name)
	if err != nil {
		return nil, err
	}

	loggers[name] = logger
	if hook != nil {
		hooks[name] = hook
	}
	return logger, nil
}

// createLogger tạo một logger mới với rotation và async hook
func createLogger(name string) (*logrus.Logger, *AsyncHook, error) {
	config := cfg
	if config == nil {
		config = DefaultConfig()
	}

	logger := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	var formatter logrus.Formatter
	if config.Format == "json" {
		formatter = &logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "caller",
			},
			CallerPrettyfier: callerPrettyfier,
		}
	} else {
		formatter = &logrus.TextFormatter{
			TimestampFormat:  "2006-01-02 15:04:05.000",
			FullTimestamp:    true,
			CallerPrettyfier: callerPrettyfier,
		}
	}
	logger.SetFormatter(formatter)
	logger.SetReportCaller(true)

	fileName := name + ".log"
	switch name {
	case "app":
		fileName = config.AppFile
	case "audit":
		fileName = config.AuditFile
	case "error":
		fileName = config.ErrorFile
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(rootDir, "logs", fileName),
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}

	var out io.Writer
	switch config.Output {
	case "stdout":
		out = os.Stdout
	case "file":
		out = fileWriter
	default:
		out = io.MultiWriter(os.Stdout, fileWriter)
	}

	// Ghi thực đi qua AsyncHook, logger chính discard để không block
	hook := NewAsyncHook(out, formatter, 1000)
	logger.AddHook(hook)
	logger.SetOutput(io.Discard)

	return logger, hook, nil
}

// callerPrettyfier rút gọn thông tin caller trong log
func callerPrettyfier(f *runtime.Frame) (string, string) {
	funcName := f.Function
	if idx := strings.LastIndex(funcName, "/"); idx >= 0 {
		funcName = funcName[idx+1:]
	}
	return funcName, fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
}

// Close đóng tất cả các hook, xả hết log còn trong buffer
func Close() {
	mu.Lock()
	defer mu.Unlock()

	for _, hook := range hooks {
		hook.Close()
	}
	hooks = make(map[string]*AsyncHook)
	loggers = make(map[string]*logrus.Logger)
}
