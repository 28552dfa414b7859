package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	chatUC "github.com/khoahotran/assistant-relay/internal/application/usecase/chat"
	"github.com/khoahotran/assistant-relay/pkg/apperror"
	"github.com/khoahotran/assistant-relay/pkg/logger"
)

type ChatHandler struct {
	chatUseCase *chatUC.ChatUseCase
	logger      logger.Logger
}

func NewChatHandler(uc *chatUC.ChatUseCase, log logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatUseCase: uc,
		logger:      log,
	}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// an unreadable body is reported like any other unexpected failure
		c.Error(apperror.NewInternal("malformed chat request body", err))
		return
	}

	bundle, err := req.ContextBundle()
	if err != nil {
		c.Error(apperror.NewInternal("malformed chat context", err))
		return
	}

	input := chatUC.ChatInput{
		Query:   req.Query,
		Context: bundle,
	}
	if ownerID, ok := GetOwnerIDFromGinContext(c); ok {
		input.OwnerID = &ownerID
	}

	output, err := h.chatUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: output.Response})
}
