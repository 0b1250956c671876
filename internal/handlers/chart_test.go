package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/timeline-chart/internal/dto"
	"github.com/GregMSThompson/timeline-chart/internal/errs"
	"github.com/GregMSThompson/timeline-chart/internal/services"
	"github.com/GregMSThompson/timeline-chart/pkg/helpers"
)

type stubRenderService struct {
	svg     []byte
	err     error
	lastReq dto.TimelineRequest
	called  bool
}

func (s *stubRenderService) Render(_ context.Context, req dto.TimelineRequest) ([]byte, error) {
	s.called = true
	s.lastReq = req
	return s.svg, s.err
}

func (s *stubRenderService) Demo(_ context.Context) ([]byte, error) {
	s.called = true
	return s.svg, s.err
}

func TestIndexMountsChartInContainer(t *testing.T) {
	svc := &stubRenderService{svg: []byte(`<svg xmlns="http://www.w3.org/2000/svg"><text>Job Search</text></svg>`)}
	resp := &stubResponseHandler{}
	h := NewChartHandlers(&Deps{ResponseHandler: resp, RenderSvc: svc})

	rr := httptest.NewRecorder()
	h.Index(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if !resp.writeHTMLCalled {
		t.Fatal("expected WriteHTML")
	}
	page := string(resp.writeHTMLBody)
	if !strings.Contains(page, `<div id="container"><svg xmlns="http://www.w3.org/2000/svg">`) {
		t.Fatalf("chart not mounted unescaped in #container:\n%s", page)
	}
}

func TestIndexRendersRealDemo(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewChartHandlers(&Deps{ResponseHandler: resp, RenderSvc: services.NewRenderService()})

	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(helpers.TestCtx())
	rr := httptest.NewRecorder()
	h.Index(rr, req)

	if !strings.Contains(string(resp.writeHTMLBody), ">Career Exploration</text>") {
		t.Fatalf("demo chart missing from page")
	}
}

func TestDemoWritesSVG(t *testing.T) {
	svc := &stubRenderService{svg: []byte("<svg/>")}
	resp := &stubResponseHandler{}
	h := NewChartHandlers(&Deps{ResponseHandler: resp, RenderSvc: svc})

	rr := httptest.NewRecorder()
	h.Demo(rr, httptest.NewRequest(http.MethodGet, "/demo.svg", nil))

	if !resp.writeSVGCalled || string(resp.writeSVGBody) != "<svg/>" {
		t.Fatal("expected demo SVG to be written")
	}
}

func TestRender_OK(t *testing.T) {
	svc := &stubRenderService{svg: []byte("<svg/>")}
	resp := &stubResponseHandler{}
	h := NewChartHandlers(&Deps{ResponseHandler: resp, RenderSvc: svc})

	rr := httptest.NewRecorder()
	h.Render(rr, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(timelineBody)))

	if !resp.writeSVGCalled {
		t.Fatal("expected WriteSVG")
	}
	if svc.lastReq.Start != "2020-05-01" || svc.lastReq.End != "2020-12-01" {
		t.Fatalf("unexpected request: %+v", svc.lastReq)
	}
}

func TestRender_InvalidJSON(t *testing.T) {
	svc := &stubRenderService{}
	resp := &stubResponseHandler{}
	h := NewChartHandlers(&Deps{ResponseHandler: resp, RenderSvc: svc})

	rr := httptest.NewRecorder()
	h.Render(rr, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader("{")))

	if svc.called {
		t.Fatal("service should not be called on invalid JSON")
	}
	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError")
	}
}

func TestRender_BodyTooLarge(t *testing.T) {
	svc := &stubRenderService{}
	resp := &stubResponseHandler{}
	h := NewChartHandlers(&Deps{ResponseHandler: resp, RenderSvc: svc})

	body := `{"title":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	rr := httptest.NewRecorder()
	h.Render(rr, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body)))

	if svc.called {
		t.Fatal("service should not be called for an oversized body")
	}
	var ve *errs.ValidationError
	if !errors.As(resp.handleError, &ve) || !strings.Contains(ve.Message, "must not exceed") {
		t.Fatalf("expected size ValidationError, got %v", resp.handleError)
	}
}

func TestRender_ServiceError(t *testing.T) {
	svc := &stubRenderService{err: errs.NewValidationError("ranges[0].start is required")}
	resp := &stubResponseHandler{}
	h := NewChartHandlers(&Deps{ResponseHandler: resp, RenderSvc: svc})

	rr := httptest.NewRecorder()
	h.Render(rr, httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(timelineBody)))

	if !errors.Is(resp.handleError, svc.err) {
		t.Fatalf("expected service error to reach HandleError, got %v", resp.handleError)
	}
	if resp.writeSVGCalled {
		t.Fatal("WriteSVG should not be called on error")
	}
}
