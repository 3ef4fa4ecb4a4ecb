package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/intuity-sync/internal/dto"
	"github.com/lshigami/intuity-sync/internal/localstore"
	"github.com/lshigami/intuity-sync/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*gin.Engine, service.SyncService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := service.NewSyncService(localstore.NewMemory(), nil, nil)
	router := gin.New()
	NewStudentController(svc).RegisterRoutes(router.Group("/api/v1"))
	return router, svc
}

func TestGetCurrentQuestion(t *testing.T) {
	router, svc := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/questions/current", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"found":false}`, w.Body.String())

	svc.PublishQuestion(t.Context(), dto.PublishQuestionRequest{ID: "q1", Text: "Why is the sky blue?"})

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/questions/current", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Found    bool           `json:"found"`
		Question map[string]any `json:"question"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Found)
	assert.Equal(t, "q1", body.Question["id"])
	assert.Equal(t, "Why is the sky blue?", body.Question["question_text"])
}

func TestSubmitResponse(t *testing.T) {
	router, svc := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/responses",
		strings.NewReader(`{"questionId":"q1","studentName":"Ana","answer":"Rayleigh scattering","wordCount":2}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var body struct {
		Success  bool           `json:"success"`
		Synced   bool           `json:"synced"`
		Response map[string]any `json:"response"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.False(t, body.Synced)
	assert.Equal(t, "q1", body.Response["question_id"])
	assert.Equal(t, "Ana", body.Response["student_name"])
	assert.EqualValues(t, 2, body.Response["word_count"])

	all := svc.GetAllResponses(t.Context())
	require.Len(t, all, 1)
	assert.Equal(t, "Rayleigh scattering", all[0].Answer)
}

func TestSubmitResponse_BadBody(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/responses", strings.NewReader(`"just a string"`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStatus(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var status dto.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.NetworkReachable)
	assert.False(t, status.RemoteConfigured)
	assert.False(t, status.Reachable)
}
