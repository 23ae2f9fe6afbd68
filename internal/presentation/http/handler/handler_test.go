package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anviet/tuition-api/internal/application/service"
	"github.com/anviet/tuition-api/internal/config"
	"github.com/anviet/tuition-api/internal/domain/billing"
	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/internal/domain/enum"
	"github.com/anviet/tuition-api/internal/domain/repository"
	infraRepo "github.com/anviet/tuition-api/internal/infrastructure/repository"
	"github.com/anviet/tuition-api/internal/infrastructure/storage"
	"github.com/anviet/tuition-api/internal/presentation/http/handler"
	"github.com/anviet/tuition-api/internal/presentation/http/routes"
	"github.com/anviet/tuition-api/pkg/printer"
	"github.com/anviet/tuition-api/pkg/utils"
)

const testPasscode = "Anviet@2026"

var testNow = time.Date(2026, time.March, 2, 8, 30, 0, 0, time.UTC)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type testServer struct {
	router  *gin.Engine
	history repository.HistoryRepository
	drafts  repository.DraftRepository
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	clock := func() time.Time { return testNow }
	store := storage.NewMemoryStore()

	history := infraRepo.NewHistoryRepository(store, utils.NewTimestampIDGenerator(clock), log)
	drafts := infraRepo.NewDraftRepository(store, log)

	layout := billing.ReceiptLayout{
		Header:  entity.ReceiptHeader{CenterName: "TRUNG TÂM CAN THIỆP SỚM AN VIỆT"},
		Payment: entity.PaymentInfo{BankName: "TPBank", AccountNumber: "10000815935", AccountHolder: "Nguyễn Thị Bích"},
	}
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)

	receipts := service.NewReceiptService(history, printer.NewNullPrinter(), printer.TypeNone, 48, layout, log)
	tuition := service.NewTuitionService(history, drafts, receipts, clock, log)
	export := service.NewExportService(history, store, t.TempDir(), clock, log)

	cfg := &config.Config{App: config.AppConfig{Name: "tuition-api"}}
	router := routes.Setup(&routes.Handlers{
		Auth:    handler.NewAuthHandler(service.NewAuthService(testPasscode, "", jwtManager, log)),
		Tuition: handler.NewTuitionHandler(tuition),
		Draft:   handler.NewDraftHandler(tuition),
		Receipt: handler.NewReceiptHandler(receipts),
		Export:  handler.NewExportHandler(export),
	}, &routes.Deps{JWTManager: jwtManager, Cfg: cfg, Logger: log})

	token, err := jwtManager.GenerateSessionToken()
	require.NoError(t, err)

	return &testServer{router: router, history: history, drafts: drafts, token: token}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func daycarePayload() gin.H {
	return gin.H{
		"type":          "daycare",
		"studentName":   "Nguyễn Văn An",
		"className":     "Bán trú",
		"phoneNumber":   "0984.538.228",
		"monthYear":     "Tháng 3/2026",
		"createdDate":   "2/3/2026",
		"studySchedule": "Thứ hai đến thứ sáu",
		"issuer":        "Cô Bích",
		"items": []gin.H{
			{"id": "d1", "content": "Phí lớp nhóm", "unit": "Tháng", "quantity": 1, "rate": 1600000, "discount": 10},
			{"id": "d9", "content": "Hoàn tiền ăn", "unit": "Ngày", "quantity": 5, "rate": 30000, "discount": 0},
		},
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.token = ""

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"code": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Mã số bí mật không chính xác. Vui lòng thử lại.", decode(t, w).Message)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"code": testPasscode})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		State       struct {
			View          string `json:"view"`
			Authenticated bool   `json:"authenticated"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.NotEmpty(t, data.AccessToken)
	assert.Equal(t, "Bearer", data.TokenType)
	assert.Equal(t, "dashboard", data.State.View)
	assert.True(t, data.State.Authenticated)
}

func TestLogin_MissingCode(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	s.token = ""

	w := s.do(t, http.MethodGet, "/api/v1/history", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	s.token = "not-a-token"
	w = s.do(t, http.MethodGet, "/api/v1/history", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_ReturnsLoginState(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"view":"login"`)
}

func TestNewForm(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/forms/individual", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Record   entity.TuitionRecord `json:"record"`
		Title    string               `json:"title"`
		HasDraft bool                 `json:"has_draft"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, enum.BillingTypeIndividual, data.Record.Type)
	assert.Equal(t, "Tháng 3/2026", data.Record.MonthYear)
	assert.Equal(t, "Học Phí Cá Nhân", data.Title)
	assert.False(t, data.HasDraft)

	w = s.do(t, http.MethodGet, "/api/v1/forms/weekly", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmit_DaycareScenario(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	w := s.do(t, http.MethodPut, "/api/v1/drafts/daycare", daycarePayload())
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/receipts", daycarePayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		Record  entity.TuitionRecord `json:"record"`
		Receipt entity.Receipt       `json:"receipt"`
		State   struct {
			View string `json:"view"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))

	assert.NotEmpty(t, data.Record.ID)
	assert.Equal(t, "0984538228", data.Record.PhoneNumber)
	assert.Equal(t, 1290000.0, data.Receipt.GrandTotal)
	require.Len(t, data.Receipt.Rows, 2)
	assert.Equal(t, 1440000.0, data.Receipt.Rows[0].Amount)
	assert.Equal(t, -150000.0, data.Receipt.Rows[1].Amount)
	assert.Equal(t, "receipt", data.State.View)

	records, err := s.history.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, data.Record.ID, records[0].ID)

	exists, err := s.drafts.Exists(ctx, enum.BillingTypeDaycare)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSubmit_ValidationErrors(t *testing.T) {
	s := newTestServer(t)

	payload := daycarePayload()
	payload["type"] = "individual"
	payload["studentName"] = "   "
	payload["issuer"] = ""

	w := s.do(t, http.MethodPost, "/api/v1/receipts", payload)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var errs []struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Errors, &errs))
	require.Len(t, errs, 2)
	assert.Equal(t, "studentName", errs[0].Field)
	assert.Equal(t, "issuer", errs[1].Field)

	records, err := s.history.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPreview_DoesNotPersist(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/receipts/preview", daycarePayload())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"grand_total":1290000`)

	records, err := s.history.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDrafts(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/drafts/daycare", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	payload := daycarePayload()
	payload["type"] = "individual"
	w = s.do(t, http.MethodPut, "/api/v1/drafts/daycare", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/v1/drafts/daycare", daycarePayload())
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/drafts/daycare", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var draft entity.TuitionRecord
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &draft))
	assert.Equal(t, enum.BillingTypeDaycare, draft.Type)
	assert.Equal(t, "Nguyễn Văn An", draft.StudentName)

	w = s.do(t, http.MethodGet, "/api/v1/forms/daycare", nil)
	assert.Contains(t, string(decode(t, w).Data), `"has_draft":true`)

	w = s.do(t, http.MethodDelete, "/api/v1/drafts/daycare", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/drafts/daycare", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func submit(t *testing.T, s *testServer, payload gin.H) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/receipts", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var data struct {
		Record entity.TuitionRecord `json:"record"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	return data.Record.ID
}

func TestHistory_ListFilterAndDelete(t *testing.T) {
	s := newTestServer(t)

	first := submit(t, s, daycarePayload())
	other := daycarePayload()
	other["type"] = "individual"
	other["studentName"] = "Trần Thị Bình"
	second := submit(t, s, other)

	w := s.do(t, http.MethodGet, "/api/v1/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Items []service.HistorySummary `json:"items"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
	require.Len(t, page.Items, 2)
	assert.Equal(t, second, page.Items[0].ID)
	assert.Equal(t, first, page.Items[1].ID)
	assert.Equal(t, 1290000.0, page.Items[1].GrandTotal)

	w = s.do(t, http.MethodGet, "/api/v1/history?search=b%C3%ACnh", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, second, page.Items[0].ID)

	// search covers the student name only
	w = s.do(t, http.MethodGet, "/api/v1/history?search=b%C3%A1n%20tr%C3%BA", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &page))
	assert.Empty(t, page.Items)

	w = s.do(t, http.MethodGet, "/api/v1/history?type=weekly", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/history/"+first, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"view":"form"`)

	w = s.do(t, http.MethodDelete, "/api/v1/history/"+first, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/history/"+first, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/history/"+first, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReceipt_RenderAndPrint(t *testing.T) {
	s := newTestServer(t)
	id := submit(t, s, daycarePayload())

	w := s.do(t, http.MethodGet, "/api/v1/history/"+id+"/receipt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"masked_phone":"098***228"`)

	token := s.token
	s.token = ""
	w = s.do(t, http.MethodGet, "/api/v1/history/"+id+"/receipt/view?print=1&access_token="+token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Nguyễn Văn An")
	assert.Contains(t, w.Body.String(), "window.print()")
	s.token = token

	// no printer configured: receipt still comes back with a warning
	w = s.do(t, http.MethodPost, "/api/v1/history/"+id+"/print", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var printed struct {
		Receipt entity.Receipt `json:"receipt"`
		Warning string         `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &printed))
	assert.Equal(t, 1290000.0, printed.Receipt.GrandTotal)
	assert.NotEmpty(t, printed.Warning)

	w = s.do(t, http.MethodPost, "/api/v1/history/missing/print", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/printer/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"connected":false`)
}

func TestExportAndBackup(t *testing.T) {
	s := newTestServer(t)
	submit(t, s, daycarePayload())

	w := s.do(t, http.MethodGet, "/api/v1/history/export?type=daycare", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/vnd.openxmlformats"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "lich_su_hoc_phi_20260302_083000.xlsx")
	assert.NotZero(t, w.Body.Len())

	w = s.do(t, http.MethodPost, "/api/v1/backups", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, string(decode(t, w).Data), "tuition_history_20260302_083000.json")
}

func TestHealthAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
