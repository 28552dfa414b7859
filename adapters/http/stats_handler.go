package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	activityUC "github.com/khoahotran/assistant-relay/internal/application/usecase/activity"
)

type StatsHandler struct {
	useCase *activityUC.ActivityUseCase
}

func NewStatsHandler(uc *activityUC.ActivityUseCase) *StatsHandler {
	return &StatsHandler{useCase: uc}
}

func (h *StatsHandler) ChatStats(c *gin.Context) {
	stats, err := h.useCase.Daily(c.Request.Context(), c.Query("date"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ChatStatsDTO(*stats))
}
