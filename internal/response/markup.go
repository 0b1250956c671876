package response

import (
	"net/http"
	"strconv"

	"github.com/GregMSThompson/timeline-chart/pkg/logger"
)

const (
	contentTypeSVG  = "image/svg+xml"
	contentTypeHTML = "text/html; charset=utf-8"
)

func (h *responseHandler) WriteSVG(w http.ResponseWriter, r *http.Request, status int, svg []byte) {
	h.writeBody(w, r, status, contentTypeSVG, svg)
}

func (h *responseHandler) WriteHTML(w http.ResponseWriter, r *http.Request, status int, page []byte) {
	h.writeBody(w, r, status, contentTypeHTML, page)
}

func (h *responseHandler) writeBody(w http.ResponseWriter, r *http.Request, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		logger.FromContext(r.Context()).Warn("failed to write response body", "error", err, "content_type", contentType)
	}
}
