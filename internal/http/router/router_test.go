package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matyldajandova/handyhands-calculator-sub001/internal/calendar"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/config"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/document"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/form"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/http/handler"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/http/middleware"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/http/router"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/notify"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/pricing"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/region"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/repository"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/service"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/storage"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T, rateLimit config.RateLimitConfig) http.Handler {
	t.Helper()
	log := zap.NewNop()
	db := testutil.SetupTestDB(t)

	cfg := &config.Config{
		App:       config.AppConfig{Environment: "development"},
		Security:  config.SecurityConfig{ContentTypeNosniff: true},
		RateLimit: rateLimit,
	}

	engine := pricing.NewEngine(region.NewStaticResolver(region.DefaultTable()), log)
	quotes := service.NewQuoteService(form.DefaultRegistry(), engine,
		calendar.NewPolicy(time.UTC, time.Now), service.QuoteOptions{Optimized: true}, log)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	renderer, err := document.NewHTMLRenderer(document.DefaultCompany)
	require.NoError(t, err)
	offers := service.NewOfferService(quotes, renderer, store, repository.NewSubmissionRepository(db),
		notify.NewLogMailer("noreply@handyhands.cz", log), notify.NopNotifier{}, "info@handyhands.cz", time.UTC, log)

	return router.NewRouter(cfg, log, db,
		middleware.NewRateLimiter(&cfg.RateLimit, log),
		handler.NewFormHandler(quotes, log),
		handler.NewQuoteHandler(quotes, log),
		handler.NewOfferHandler(offers, log),
	).Setup()
}

func serve(h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "192.0.2.10")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// ============================================================================
// Health Tests
// ============================================================================

func TestRouter_Health(t *testing.T) {
	h := setupRouter(t, config.RateLimitConfig{})

	tests := []struct {
		path string
	}{
		{"/health"},
		{"/health/db"},
		{"/health/ready"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(h, http.MethodGet, tt.path, nil)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
		})
	}
}

// ============================================================================
// API Routing Tests
// ============================================================================

func TestRouter_QuoteFlow(t *testing.T) {
	h := setupRouter(t, config.RateLimitConfig{})

	rec := serve(h, http.MethodGet, "/api/v1/forms", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	body := []byte(`{"formData":{"pricingMode":"monthly-tariff","zipCode":"60200"}}`)
	rec = serve(h, http.MethodPost, "/api/v1/quotes/"+form.ServiceHomeCleaning, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var quote struct {
		Hash string `json:"hash"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	require.NotEmpty(t, quote.Hash)

	rec = serve(h, http.MethodGet, "/api/v1/quotes?hash="+quote.Hash, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, http.MethodGet, "/api/v1/offers/preview?hash="+quote.Hash, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	h := setupRouter(t, config.RateLimitConfig{})

	rec := serve(h, http.MethodGet, "/api/v1/customers", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_SwaggerDisabled(t *testing.T) {
	h := setupRouter(t, config.RateLimitConfig{})

	rec := serve(h, http.MethodGet, "/swagger/index.html", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_SubmissionRateLimit(t *testing.T) {
	h := setupRouter(t, config.RateLimitConfig{
		Enabled:            true,
		RequestsPerMinute:  100,
		SubmissionsPerHour: 1,
	})

	// Invalid submissions still count towards the limit.
	first := serve(h, http.MethodPost, "/api/v1/offers", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, first.Code)

	second := serve(h, http.MethodPost, "/api/v1/offers", []byte(`{}`))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	rec := serve(h, http.MethodGet, "/api/v1/regions", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "other routes keep the general limit")
}
