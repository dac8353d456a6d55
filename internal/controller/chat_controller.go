package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"statchat-backend/config"
	"statchat-backend/internal/dto"
	"statchat-backend/internal/model"
	"statchat-backend/internal/service"
)

type ChatController struct {
	chatService service.ChatbotService
	debug       bool
}

func NewChatController(cfg *config.Config, chatService service.ChatbotService) *ChatController {
	return &ChatController{
		chatService: chatService,
		debug:       cfg.Debug,
	}
}

func RegisterChatRoutes(router *gin.Engine, controller *ChatController) {
	v1 := router.Group("/api/v1/chat")
	{
		v1.POST("/query", controller.HandleChatQuery)
		v1.GET("/details", controller.HandleProcessingDetails)
	}
}

// HandleChatQuery godoc
// @Summary      Answer a sports-statistics question
// @Description  Takes a free-text question and an optional pre-selected player name. Extracts structured intent, queries the graph store, and returns a natural-language answer. Parse and extraction failures still return a well-formed 200 response with a clarification answer.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request body dto.ChatQueryRequest true "Question and optional pre-selected subject"
// @Success      200 {object} dto.ChatbotResponse "Answer with confidence, optional visualization and debug info"
// @Failure      400 {object} model.Response "Invalid request body"
// @Router       /api/v1/chat/query [post]
func (c *ChatController) HandleChatQuery(ctx *gin.Context) {
	var req dto.ChatQueryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Invalid chat request body")
		ctx.JSON(http.StatusBadRequest, model.NewResponse("Invalid request body", nil))
		return
	}

	resp := c.chatService.ProcessQuestion(ctx.Request.Context(), req)
	ctx.JSON(http.StatusOK, resp)
}

// HandleProcessingDetails godoc
// @Summary      Inspect the last processed question
// @Description  Returns the most recent request's analysis and executed queries. Only available when the debug flag is active; last-writer-wins under concurrent load.
// @Tags         chat
// @Produce      json
// @Success      200 {object} dto.ProcessingDetails
// @Failure      404 {object} model.Response "Debug surface disabled"
// @Router       /api/v1/chat/details [get]
func (c *ChatController) HandleProcessingDetails(ctx *gin.Context) {
	if !c.debug {
		ctx.JSON(http.StatusNotFound, model.NewResponse("Not found", nil))
		return
	}
	ctx.JSON(http.StatusOK, c.chatService.ProcessingDetails())
}
