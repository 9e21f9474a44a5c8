package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyalab/backend/config"
	"github.com/arogyalab/backend/internal/api"
	"github.com/arogyalab/backend/internal/catalog"
	"github.com/arogyalab/backend/internal/models"
	"github.com/arogyalab/backend/internal/server"
	"github.com/arogyalab/backend/internal/service"
	"github.com/arogyalab/backend/internal/testhelpers"
)

type fixedExtractor struct{ text string }

func (f *fixedExtractor) Extract(path, lang string) string { return f.text }

type cannedChat struct{ reply string }

func (c *cannedChat) Complete(ctx context.Context, messages []service.ChatMessage) (string, error) {
	return c.reply, nil
}

// newStack wires the full server over sqlite, with OCR and the chat API
// replaced by canned fakes.
func newStack(t *testing.T, extracted string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)

	labs := &catalog.LabTestCatalog{Tests: []catalog.LabTest{
		{Name: "Hemoglobin", Synonyms: []string{"Hemoglobin", "Hb"}, Key: "hemoglobin"},
		{Name: "Sugar", Synonyms: []string{"Sugar", "Glucose"}, Key: "sugar"},
	}}
	foods := catalog.NewFoodCatalog([]catalog.Food{
		{Name: "Spinach", Calories: 23},
		{Name: "Eggs", Calories: 155},
		{Name: "Apple", Calories: 95},
		{Name: "Almonds", Calories: 160},
		{Name: "Greek Yogurt", Calories: 100},
		{Name: "Quinoa", Calories: 120},
		{Name: "Paneer", Calories: 265},
		{Name: "Brown Rice", Calories: 215},
	})

	files, err := service.NewFileStore(context.Background(), t.TempDir(), config.StorageConfig{})
	require.NoError(t, err)

	mirror := service.NewEntityMirror(nil)
	auth := service.NewAuthService(db, "integration-secret")
	reports := service.NewReportService(db, files, &fixedExtractor{text: extracted}, labs, mirror)
	activity := service.NewActivityService(db, mirror)
	messages := service.NewMessageService(db)
	dashboard := service.NewDashboardService(db, foods, labs, reports, activity, messages)
	chat := service.NewChatService(db, &cannedChat{reply: "All good."}, true, reports, activity)
	profile := service.NewProfileService(db, t.TempDir())

	srv := server.NewServer(&api.Services{
		Auth:      auth,
		Reports:   reports,
		Dashboard: dashboard,
		Activity:  activity,
		Chat:      chat,
		Messages:  messages,
		Profile:   profile,
	})
	return srv.Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// TestPatientJourney walks the whole flow: register, upload a report,
// read the dashboard, get a doctor comment, chat about it.
func TestPatientJourney(t *testing.T) {
	router := newStack(t, "Hemoglobin: 9.2\nGlucose 150")

	// Patient registers.
	rr := doJSON(t, router, "POST", "/api/v1/auth/register", "", gin.H{
		"username": "asha", "password": "password123", "age": 34,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var reg struct {
		Token     string `json:"token"`
		PatientID string `json:"patient_id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reg))

	// Uploads a shared report.
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("report_file", "panel.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("dummy"))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("shared_with_doctor", "true"))
	require.NoError(t, w.Close())

	upload := httptest.NewRequest("POST", "/api/v1/reports", &buf)
	upload.Header.Set("Content-Type", w.FormDataContentType())
	upload.Header.Set("Authorization", "Bearer "+reg.Token)
	uploadRec := httptest.NewRecorder()
	router.ServeHTTP(uploadRec, upload)
	require.Equal(t, http.StatusCreated, uploadRec.Code, uploadRec.Body.String())

	var report models.HealthReport
	require.NoError(t, json.Unmarshal(uploadRec.Body.Bytes(), &report))
	assert.Contains(t, []string(report.Conditions), "Anemia")
	assert.Contains(t, []string(report.Conditions), "High Blood Sugar")

	// Dashboard reflects the report.
	rr = doJSON(t, router, "GET", "/api/v1/dashboard", reg.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var dash struct {
		ReportCount int      `json:"report_count"`
		Conditions  []string `json:"conditions"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dash))
	assert.Equal(t, 1, dash.ReportCount)
	assert.Contains(t, dash.Conditions, "Anemia")

	// Doctor registers, finds the patient, comments.
	rr = doJSON(t, router, "POST", "/api/v1/auth/register", "", gin.H{
		"username": "drrao", "password": "password123", "role": models.RoleDoctor,
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var doc struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))

	rr = doJSON(t, router, "GET", "/api/v1/doctor/patients/"+reg.PatientID, doc.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSON(t, router, "POST", "/api/v1/doctor/reports/"+report.ID.String()+"/comment", doc.Token, gin.H{
		"comment": "Please start iron supplements.",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	// Patient sees the comment in the inbox.
	rr = doJSON(t, router, "GET", "/api/v1/messages", reg.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var inbox struct {
		Messages []models.Message `json:"messages"`
		Unread   int64            `json:"unread"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &inbox))
	require.Len(t, inbox.Messages, 1)
	assert.EqualValues(t, 1, inbox.Unread)

	// And asks the assistant about it.
	rr = doJSON(t, router, "POST", "/api/v1/chatbot", reg.Token, gin.H{"message": "What does anemia mean?"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "All good.")
}
