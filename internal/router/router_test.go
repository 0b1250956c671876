package router

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/timeline-chart/internal/handlers"
	"github.com/GregMSThompson/timeline-chart/internal/response"
	"github.com/GregMSThompson/timeline-chart/internal/services"
	"github.com/GregMSThompson/timeline-chart/pkg/logger"
)

func newTestRouter() http.Handler {
	log := slog.New(logger.NewTestHandler(slog.LevelInfo))
	return NewRouter(&handlers.Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		RenderSvc:       services.NewRenderService(),
	})
}

func TestRouterServesDemoSVG(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/demo.svg", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(rr.Body.String(), "<svg") {
		t.Fatalf("body is not SVG: %.60s", rr.Body.String())
	}
}

func TestRouterIndexPage(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `<div id="container"><svg`) {
		t.Fatalf("unexpected index response: %d %.200s", rr.Code, rr.Body.String())
	}
}

func TestRouterRenderValidation(t *testing.T) {
	body := `{"start":"2020-12-01","end":"2020-05-01","ranges":[]}`
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body)))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"invalid_input"`) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestRouterRenderRejectsUnboundedSpan(t *testing.T) {
	body := `{"start":"0001-01-01","end":"9999-12-01","ranges":[]}`
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body)))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if rr.Body.Len() > 1024 {
		t.Fatalf("rejection should not carry a chart, got %d bytes", rr.Body.Len())
	}
}

func TestRouterTimelinesRequireAuth(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/timelines", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}
