package handlers

import (
	"bytes"
	"context"
	"html/template"
	"net/http"

	"github.com/GregMSThompson/timeline-chart/internal/dto"
	"github.com/GregMSThompson/timeline-chart/internal/response"
)

type renderService interface {
	Render(ctx context.Context, req dto.TimelineRequest) ([]byte, error)
	Demo(ctx context.Context) ([]byte, error)
}

// The chart is mounted into #container, the element the page reserves for it.
var indexPage = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="container">{{.Chart}}</div>
</body>
</html>
`))

type indexData struct {
	Title string
	Chart template.HTML
}

type chartHandlers struct {
	ResponseHandler response.ResponseHandler
	RenderSvc       renderService
}

func NewChartHandlers(deps *Deps) *chartHandlers {
	return &chartHandlers{
		ResponseHandler: deps.ResponseHandler,
		RenderSvc:       deps.RenderSvc,
	}
}

// Index serves the demo page with the chart mounted in its container.
func (h *chartHandlers) Index(w http.ResponseWriter, r *http.Request) {
	svg, err := h.RenderSvc.Demo(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	var page bytes.Buffer
	// svg comes from our own serialiser, which escapes all user text.
	if err := indexPage.Execute(&page, indexData{Title: "Timeline", Chart: template.HTML(svg)}); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteHTML(w, r, http.StatusOK, page.Bytes())
}

func (h *chartHandlers) Demo(w http.ResponseWriter, r *http.Request) {
	svg, err := h.RenderSvc.Demo(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSVG(w, r, http.StatusOK, svg)
}

// Render draws an ad-hoc timeline posted as JSON without storing it.
func (h *chartHandlers) Render(w http.ResponseWriter, r *http.Request) {
	req, err := decodeTimelineRequest(w, r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	svg, err := h.RenderSvc.Render(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSVG(w, r, http.StatusOK, svg)
}
