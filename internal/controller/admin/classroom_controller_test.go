package admin

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
	NewClassroomController(svc).RegisterRoutes(router.Group("/api/v1"))
	return router, svc
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPublishQuestion(t *testing.T) {
	router, svc := setupRouter(t)

	w := do(router, http.MethodPost, "/api/v1/admin/questions", `{"question_text":"What is 2+2?","lesson":"arithmetic"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["synced"])
	question := body["question"].(map[string]any)
	assert.Equal(t, "What is 2+2?", question["text"])
	assert.Equal(t, "arithmetic", question["lesson"])
	assert.True(t, strings.HasPrefix(question["id"].(string), "q_"))

	assert.Len(t, svc.GetAllQuestions(t.Context()), 1)
}

func TestPublishQuestion_BadBody(t *testing.T) {
	router, _ := setupRouter(t)

	for _, body := range []string{"", "[1,2]", "{broken"} {
		w := do(router, http.MethodPost, "/api/v1/admin/questions", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}

func TestListQuestionsAndResponses(t *testing.T) {
	router, svc := setupRouter(t)

	w := do(router, http.MethodGet, "/api/v1/admin/questions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	svc.PublishQuestion(t.Context(), dto.PublishQuestionRequest{ID: "q1", Text: "One"})
	svc.SubmitResponse(t.Context(), dto.SubmitResponseRequest{QuestionID: "q1", StudentName: "Ana", Answer: "yes"})

	w = do(router, http.MethodGet, "/api/v1/admin/questions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var questions []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &questions))
	require.Len(t, questions, 1)
	assert.Equal(t, "q1", questions[0]["id"])

	w = do(router, http.MethodGet, "/api/v1/admin/responses", "")
	require.Equal(t, http.StatusOK, w.Code)
	var responses []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &responses))
	require.Len(t, responses, 1)
	assert.Equal(t, "Ana", responses[0]["student_name"])
}

func TestListQuestions_Source(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, http.MethodGet, "/api/v1/admin/questions?source=remote", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = do(router, http.MethodGet, "/api/v1/admin/responses?source=remote", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = do(router, http.MethodGet, "/api/v1/admin/questions?source=cloud", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncOfflineData_Offline(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, http.MethodPost, "/api/v1/admin/sync", "")

	require.Equal(t, http.StatusOK, w.Code)
	var report dto.SyncReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.True(t, report.Skipped)
}
