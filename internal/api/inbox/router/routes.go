package router

import (
	basehdl "omni_inbox/internal/api/base/handler"
	inboxhdl "omni_inbox/internal/api/inbox/handler"
	"omni_inbox/internal/api/middleware"
	apirouter "omni_inbox/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký các route của inbox vào group /api/v1.
// Tất cả route nghiệp vụ đều đi qua middleware tenant context.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	conversationHandler, err := inboxhdl.NewConversationHandler()
	if err != nil {
		return err
	}

	messageHandler, err := inboxhdl.NewMessageHandler()
	if err != nil {
		return err
	}

	tenantMW := []fiber.Handler{middleware.TenantContextMiddleware()}

	// Hội thoại
	apirouter.RegisterRouteWithMiddleware(v1, "/conversations", fiber.MethodGet, "/", tenantMW, basehdl.SafeHandler(conversationHandler.HandleList))
	apirouter.RegisterRouteWithMiddleware(v1, "/conversations", fiber.MethodPost, "/", tenantMW, basehdl.SafeHandler(conversationHandler.HandleCreate))
	apirouter.RegisterRouteWithMiddleware(v1, "/conversations", fiber.MethodGet, "/:id", tenantMW, basehdl.SafeHandler(conversationHandler.HandleGetWithMessages))
	apirouter.RegisterRouteWithMiddleware(v1, "/conversations", fiber.MethodPut, "/:id", tenantMW, basehdl.SafeHandler(conversationHandler.HandleUpdate))
	apirouter.RegisterRouteWithMiddleware(v1, "/conversations", fiber.MethodDelete, "/:id", tenantMW, basehdl.SafeHandler(conversationHandler.HandleDelete))

	// Tin nhắn - đăng ký /stats trước các route có :id để không bị nuốt param
	apirouter.RegisterRouteWithMiddleware(v1, "/messages", fiber.MethodGet, "/stats", tenantMW, basehdl.SafeHandler(messageHandler.HandleStats))
	apirouter.RegisterRouteWithMiddleware(v1, "/messages", fiber.MethodPost, "/", tenantMW, basehdl.SafeHandler(messageHandler.HandleCreate))
	apirouter.RegisterRouteWithMiddleware(v1, "/messages", fiber.MethodPut, "/:id", tenantMW, basehdl.SafeHandler(messageHandler.HandleUpdate))
	apirouter.RegisterRouteWithMiddleware(v1, "/messages", fiber.MethodDelete, "/:id", tenantMW, basehdl.SafeHandler(messageHandler.HandleDelete))

	return nil
}
