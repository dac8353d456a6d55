package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"statchat-backend/internal/model"
	"statchat-backend/internal/repository"
)

type HealthController struct {
	graph repository.GraphExecutor
}

func NewHealthController(graph repository.GraphExecutor) *HealthController {
	return &HealthController{graph: graph}
}

func RegisterHealthRoutes(router *gin.Engine, controller *HealthController) {
	router.GET("/health", controller.HandleHealth)
}

// HandleHealth godoc
// @Summary      Service health
// @Description  Reports graph store connectivity. This is the only path that maps infrastructure failure to a non-2xx status.
// @Tags         health
// @Produce      json
// @Success      200 {object} model.Response
// @Failure      503 {object} model.Response "Graph store unreachable"
// @Router       /health [get]
func (c *HealthController) HandleHealth(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	if err := c.graph.Ping(pingCtx); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, model.NewResponse("graph store unreachable", nil))
		return
	}
	ctx.JSON(http.StatusOK, model.NewResponse("ok", nil))
}
