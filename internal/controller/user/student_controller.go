package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/intuity-sync/internal/dto"
	"github.com/lshigami/intuity-sync/internal/service"
	"github.com/rs/zerolog/log"
)

type StudentController struct {
	syncService service.SyncService
}

func NewStudentController(syncService service.SyncService) *StudentController {
	return &StudentController{syncService: syncService}
}

func (c *StudentController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/status", c.GetStatus)
	api.GET("/questions/current", c.GetCurrentQuestion)
	api.POST("/responses", c.SubmitResponse)
}

// GetCurrentQuestion godoc
// @Summary (User) Get the current question
// @Description Returns the most recently published question. When nothing has been published the response is {"found": false} with status 200.
// @Tags User - Questions & Responses
// @Produce json
// @Success 200 {object} dto.CurrentQuestionResult
// @Router /questions/current [get]
func (c *StudentController) GetCurrentQuestion(ctx *gin.Context) {
	result := c.syncService.GetCurrentQuestion(ctx.Request.Context())
	if !result.Found {
		log.Debug().Msg("User GetCurrentQuestion: No question published yet")
	}
	ctx.JSON(http.StatusOK, result)
}

// SubmitResponse godoc
// @Summary (User) Submit an answer
// @Description Appends the answer to every local response list and mirrors it to the remote backend when reachable. Missing fields are not rejected.
// @Tags User - Questions & Responses
// @Accept json
// @Produce json
// @Param response body dto.SubmitResponseRequest true "Student answer. camelCase spellings are accepted."
// @Success 201 {object} dto.SubmitResponseResult
// @Failure 400 {object} dto.ErrorResponse "Body is not a JSON object"
// @Router /responses [post]
func (c *StudentController) SubmitResponse(ctx *gin.Context) {
	var req dto.SubmitResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("User SubmitResponse: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result := c.syncService.SubmitResponse(ctx.Request.Context(), req)
	ctx.JSON(http.StatusCreated, result)
}

// GetStatus godoc
// @Summary Connectivity status
// @Description Reports whether the network and the remote backend are currently considered reachable.
// @Tags User - Questions & Responses
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router /status [get]
func (c *StudentController) GetStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.syncService.Status())
}
