package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	syncUC "github.com/khoahotran/assistant-relay/internal/application/usecase/sync"
	"github.com/khoahotran/assistant-relay/pkg/apperror"
)

type SyncHandler struct {
	useCase *syncUC.SyncUseCase
}

func NewSyncHandler(uc *syncUC.SyncUseCase) *SyncHandler {
	return &SyncHandler{useCase: uc}
}

func (h *SyncHandler) GetWorkspace(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("ownerID not found in context", nil))
		return
	}

	ws, err := h.useCase.Fetch(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToWorkspaceDTO(ws))
}

func (h *SyncHandler) PutWorkspace(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("ownerID not found in context", nil))
		return
	}

	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid workspace body", err))
		return
	}

	ws, err := h.useCase.Save(c.Request.Context(), ownerID, req.ToBundle())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToWorkspaceDTO(ws))
}
