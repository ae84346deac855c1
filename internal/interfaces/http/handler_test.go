package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"bizbot/internal/entities"
	"bizbot/internal/repository"
	"bizbot/internal/usecases"
)

type echoRouter struct {
	lastMsg entities.InboundMessage
}

func (e *echoRouter) ProcessMessage(_ context.Context, msg entities.InboundMessage) string {
	e.lastMsg = msg
	return "echo: " + msg.Text
}

type staticProvider struct{}

func (staticProvider) Resolve(_ context.Context, id string) (*entities.BusinessConfig, error) {
	if id == "42" {
		return &entities.BusinessConfig{ID: "42", Name: "Tienda", Industry: entities.IndustryEcommerce, Active: true}, nil
	}
	return nil, repository.ErrBusinessNotFound
}

func newTestServer(t *testing.T) (*gin.Engine, *echoRouter) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zaptest.NewLogger(t)
	classifier := usecases.NewIntentClassifier(logger)
	require.NoError(t, classifier.Train(&usecases.EngineConfig{
		CommonIntents:  []usecases.CommonIntent{{Name: "greeting", Phrases: []string{"hola"}}},
		GlobalFallback: "fallback",
		SafeReply:      "safe",
	}))

	router := &echoRouter{}
	h := NewHandler(router, staticProvider{}, nil, classifier, nil, nil, "secret-token", logger)

	r := gin.New()
	SetupRoutes(r, h, NewMiddleware("test-jwt-secret"))
	return r, router
}

func TestVerifyWebhook(t *testing.T) {
	r, _ := newTestServer(t)

	// correct token: challenge echoed back
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/webhook/whatsapp/42?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12345", w.Body.String())

	// wrong token: rejected, challenge never leaked
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet,
		"/webhook/whatsapp/42?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "12345")

	// missing mode: rejected
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet,
		"/webhook/whatsapp/42?hub.verify_token=secret-token&hub.challenge=12345", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandleWebMessage(t *testing.T) {
	r, router := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/web",
		strings.NewReader(`{"business_id":"42","customer_id":"cust-1","text":"hola"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "echo: hola")
	assert.Equal(t, "42", router.lastMsg.BusinessID)
	assert.Equal(t, "web", router.lastMsg.Channel)
}

func TestHandleWebMessageValidation(t *testing.T) {
	r, _ := newTestServer(t)

	for _, body := range []string{
		`{}`,
		`{"business_id":"42"}`,
		`{"business_id":"../../etc","customer_id":"c1","text":"hola"}`,
		`not json`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhook/web", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}

func TestWhatsAppWebhookAlwaysAcknowledges(t *testing.T) {
	r, _ := newTestServer(t)

	for _, body := range []string{`{}`, `garbage`, `{"entry":[]}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp/42", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "EVENT_RECEIVED", w.Body.String())
	}
}

func TestOpsAPIRequiresAuth(t *testing.T) {
	r, _ := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/engine/stats", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/businesses/42", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthz(t *testing.T) {
	r, _ := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("42", MaxBusinessIDLength))
	assert.True(t, ValidID("biz_42-a", MaxBusinessIDLength))
	assert.True(t, ValidID("+5215512345678", MaxCustomerIDLength))
	assert.False(t, ValidID("", MaxBusinessIDLength))
	assert.False(t, ValidID("../../etc", MaxBusinessIDLength))
	assert.False(t, ValidID(strings.Repeat("a", 100), MaxBusinessIDLength))
}
