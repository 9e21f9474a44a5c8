package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arogyalab/backend/config"
	"github.com/arogyalab/backend/internal/catalog"
	"github.com/arogyalab/backend/internal/service"
	"github.com/arogyalab/backend/internal/testhelpers"
)

type fakeChatClient struct {
	reply string
}

func (f *fakeChatClient) Complete(ctx context.Context, messages []service.ChatMessage) (string, error) {
	return f.reply, nil
}

type fixedExtractor struct {
	text string
}

func (f *fixedExtractor) Extract(path, lang string) string {
	return f.text
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupTestAPI(t *testing.T, extracted string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)

	labs := &catalog.LabTestCatalog{Tests: []catalog.LabTest{
		{Name: "Hemoglobin", Synonyms: []string{"Hemoglobin", "Hb"}, Key: "hemoglobin"},
		{Name: "Sugar", Synonyms: []string{"Sugar", "Glucose"}, Key: "sugar"},
	}}
	foods := catalog.NewFoodCatalog([]catalog.Food{
		{Name: "Oatmeal", Calories: 150},
		{Name: "Apple", Calories: 95},
		{Name: "Almonds", Calories: 160},
		{Name: "Greek Yogurt", Calories: 100},
		{Name: "Quinoa", Calories: 120},
		{Name: "Spinach", Calories: 23},
		{Name: "Eggs", Calories: 155},
		{Name: "Brown Rice", Calories: 215},
		{Name: "Paneer", Calories: 265},
	})

	files, err := service.NewFileStore(context.Background(), t.TempDir(), config.StorageConfig{})
	require.NoError(t, err)

	mirror := service.NewEntityMirror(nil)
	auth := service.NewAuthService(db, "test-secret")
	reports := service.NewReportService(db, files, &fixedExtractor{text: extracted}, labs, mirror)
	activity := service.NewActivityService(db, mirror)
	messages := service.NewMessageService(db)
	dashboard := service.NewDashboardService(db, foods, labs, reports, activity, messages)
	chat := service.NewChatService(db, &fakeChatClient{reply: "Stay hydrated."}, true, reports, activity)
	profile := service.NewProfileService(db, t.TempDir())

	router := gin.New()
	RegisterRoutes(router, &Services{
		Auth:      auth,
		Reports:   reports,
		Dashboard: dashboard,
		Activity:  activity,
		Chat:      chat,
		Messages:  messages,
		Profile:   profile,
	})

	return &testEnv{router: router, db: db}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	contentType := "application/json"
	switch b := body.(type) {
	case nil:
	case *bytes.Buffer:
		reader = b
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) register(t *testing.T, username, role string) string {
	t.Helper()
	rr := e.do(t, "POST", "/api/v1/auth/register", "", gin.H{
		"username": username,
		"password": "password123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) uploadReport(t *testing.T, token, filename string, shared bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("report_file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("dummy file contents"))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("ocr_language", "eng"))
	if shared {
		require.NoError(t, w.WriteField("shared_with_doctor", "true"))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/v1/reports", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}
