package router

import (
	"strings"

	"omni_inbox/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// RoutePrefix chứa các prefix chuẩn của API
type RoutePrefix struct {
	Base string
	V1   string
}

// NewRoutePrefix tạo bộ prefix mặc định
func NewRoutePrefix() RoutePrefix {
	return RoutePrefix{
		Base: "/api",
		V1:   "/api/v1",
	}
}

// Router giữ app Fiber và bộ prefix để các package domain đăng ký route
type Router struct {
	App    *fiber.App
	Prefix RoutePrefix
}

// NewRouter tạo router trên một app Fiber
func NewRouter(app *fiber.App) *Router {
	return &Router{
		App:    app,
		Prefix: NewRoutePrefix(),
	}
}

// RegisterRouteWithMiddleware đăng ký một route kèm danh sách middleware.
// Lưu ý: Fiber v3 bỏ qua middleware truyền trực tiếp vào app.Get/Post/...,
// nên phải tạo group theo prefix và gắn middleware qua Use.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	group := router.Group(prefix)
	for _, mw := range middlewares {
		group.Use(mw)
	}

	switch strings.ToUpper(method) {
	case fiber.MethodGet:
		group.Get(path, handler)
	case fiber.MethodPost:
		group.Post(path, handler)
	case fiber.MethodPut:
		group.Put(path, handler)
	case fiber.MethodDelete:
		group.Delete(path, handler)
	default:
		logger.GetAppLogger().Warnf("Phương thức HTTP không được hỗ trợ: %s %s%s", method, prefix, path)
	}
}

// RegisterFunc là hàm đăng ký route của một package domain
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes tạo group /api/v1 và gọi lần lượt các hàm đăng ký domain
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	r := NewRouter(app)
	v1 := app.Group(r.Prefix.V1)

	for _, register := range regs {
		if err := register(v1, r); err != nil {
			return err
		}
	}

	logger.GetAppLogger().Info("Đăng ký routes hoàn tất")
	return nil
}
