package v1

import (
	"github.com/gin-gonic/gin"

	"chatdesk/assistant-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider) *Routes {
	return &Routes{
		handlers: handlerProvider,
	}
}

// Register attaches all v1 routes under the /api/v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/api/v1")
	registerAssistantRoutes(group, r.handlers.Assistant)
	registerChatRoutes(group, r.handlers.Chat)
	registerConversationRoutes(group, r.handlers.Conversation)
	registerFeedbackRoutes(group, r.handlers.Feedback)
}

func registerAssistantRoutes(router gin.IRoutes, handler *handlers.AssistantHandler) {
	router.GET("/assistant-info", handler.Info)
	router.GET("/validate-config", handler.ValidateConfig)
	router.POST("/config", handler.SaveConfig)
}

func registerChatRoutes(router gin.IRoutes, handler *handlers.ChatHandler) {
	router.POST("/chat", handler.Chat)
}

func registerConversationRoutes(router gin.IRoutes, handler *handlers.ConversationHandler) {
	router.GET("/conversations", handler.Latest)
	router.POST("/conversations", handler.Create)
}

func registerFeedbackRoutes(router gin.IRoutes, handler *handlers.FeedbackHandler) {
	router.POST("/feedback", handler.Submit)
}
