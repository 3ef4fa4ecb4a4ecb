package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/intuity-sync/internal/dto"
	"github.com/lshigami/intuity-sync/internal/errorz"
	"github.com/lshigami/intuity-sync/internal/service"
	"github.com/rs/zerolog/log"
)

// ClassroomController serves the teacher side: publishing questions and
// reviewing what students sent.
type ClassroomController struct {
	syncService service.SyncService
}

func NewClassroomController(syncService service.SyncService) *ClassroomController {
	return &ClassroomController{syncService: syncService}
}

// RegisterRoutes mounts the teacher endpoints under api/admin.
func (c *ClassroomController) RegisterRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	{
		admin.POST("/questions", c.PublishQuestion)
		admin.GET("/questions", c.ListQuestions)
		admin.GET("/responses", c.ListResponses)
		admin.POST("/sync", c.SyncOfflineData)
	}
}

// PublishQuestion godoc
// @Summary (Admin) Publish a question
// @Description Stores the question in every local slot and mirrors it to the remote backend when reachable. Always succeeds once the body parses; "synced" tells whether the backend confirmed it.
// @Tags Admin - Classroom
// @Accept json
// @Produce json
// @Param question body dto.PublishQuestionRequest true "Question to publish. Unknown fields are kept."
// @Success 201 {object} dto.PublishQuestionResult
// @Failure 400 {object} dto.ErrorResponse "Body is not a JSON object"
// @Router /admin/questions [post]
func (c *ClassroomController) PublishQuestion(ctx *gin.Context) {
	var req dto.PublishQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin PublishQuestion: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result := c.syncService.PublishQuestion(ctx.Request.Context(), req)
	ctx.JSON(http.StatusCreated, result)
}

// ListQuestions godoc
// @Summary (Admin) List questions
// @Description Lists every question found in the local slots, or the remote table when source=remote.
// @Tags Admin - Classroom
// @Produce json
// @Param source query string false "local (default) or remote"
// @Success 200 {array} object
// @Failure 400 {object} dto.ErrorResponse "Unknown source"
// @Failure 502 {object} dto.ErrorResponse "Remote backend failed"
// @Failure 503 {object} dto.ErrorResponse "Remote backend not configured"
// @Router /admin/questions [get]
func (c *ClassroomController) ListQuestions(ctx *gin.Context) {
	switch ctx.DefaultQuery("source", "local") {
	case "local":
		ctx.JSON(http.StatusOK, nonNil(c.syncService.GetAllQuestions(ctx.Request.Context())))
	case "remote":
		questions, err := c.syncService.RemoteQuestions(ctx.Request.Context())
		if err != nil {
			remoteError(ctx, "Admin ListQuestions", err)
			return
		}
		ctx.JSON(http.StatusOK, nonNil(questions))
	default:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "source must be local or remote"})
	}
}

// ListResponses godoc
// @Summary (Admin) List student responses
// @Description Lists every response found in the local lists, deduplicated, or the remote table when source=remote.
// @Tags Admin - Classroom
// @Produce json
// @Param source query string false "local (default) or remote"
// @Success 200 {array} object
// @Failure 400 {object} dto.ErrorResponse "Unknown source"
// @Failure 502 {object} dto.ErrorResponse "Remote backend failed"
// @Failure 503 {object} dto.ErrorResponse "Remote backend not configured"
// @Router /admin/responses [get]
func (c *ClassroomController) ListResponses(ctx *gin.Context) {
	switch ctx.DefaultQuery("source", "local") {
	case "local":
		ctx.JSON(http.StatusOK, nonNil(c.syncService.GetAllResponses(ctx.Request.Context())))
	case "remote":
		responses, err := c.syncService.RemoteResponses(ctx.Request.Context())
		if err != nil {
			remoteError(ctx, "Admin ListResponses", err)
			return
		}
		ctx.JSON(http.StatusOK, nonNil(responses))
	default:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "source must be local or remote"})
	}
}

// SyncOfflineData godoc
// @Summary (Admin) Replay local responses
// @Description Re-sends every locally stored response to the remote backend. Remote duplicates are expected.
// @Tags Admin - Classroom
// @Produce json
// @Success 200 {object} dto.SyncReport
// @Router /admin/sync [post]
func (c *ClassroomController) SyncOfflineData(ctx *gin.Context) {
	report := c.syncService.SyncOfflineData(ctx.Request.Context())
	ctx.JSON(http.StatusOK, report)
}

func remoteError(ctx *gin.Context, op string, err error) {
	if errors.Is(err, errorz.ErrRemoteNotConfigured) {
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Message: err.Error()})
		return
	}
	log.Error().Err(err).Msgf("%s: Remote error", op)
	ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: "Remote backend failed", Details: []string{err.Error()}})
}

// nonNil keeps empty listings encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
