package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/timeline-chart/pkg/logger"
)

type stubVerifier struct {
	token    *auth.Token
	err      error
	gotToken string
}

func (s *stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	s.gotToken = idToken
	return s.token, s.err
}

func captureUID(seen *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = UID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestFirebaseAuthAcceptsBearerToken(t *testing.T) {
	v := &stubVerifier{token: &auth.Token{UID: "uid-123"}}
	var seen string
	h := NewMiddleware(v).FirebaseAuth(captureUID(&seen))

	req := httptest.NewRequest(http.MethodGet, "/timelines", nil)
	req.Header.Set("Authorization", "Bearer abc.def")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rr.Code)
	}
	if v.gotToken != "abc.def" {
		t.Fatalf("verifier received %q", v.gotToken)
	}
	if seen != "uid-123" {
		t.Fatalf("UID in context = %q", seen)
	}
}

func TestFirebaseAuthRejects(t *testing.T) {
	cases := map[string]struct {
		header string
		err    error
	}{
		"missingHeader": {"", nil},
		"wrongScheme":   {"Basic abc", nil},
		"extraParts":    {"Bearer a b", nil},
		"badToken":      {"Bearer expired", errors.New("token expired")},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			v := &stubVerifier{token: &auth.Token{UID: "uid"}, err: tc.err}
			var seen string
			h := NewMiddleware(v).FirebaseAuth(captureUID(&seen))

			req := httptest.NewRequest(http.MethodGet, "/timelines", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rr.Code)
			}
			if seen != "" {
				t.Fatalf("next handler should not run")
			}
		})
	}
}

func TestLoggerMiddlewareInstallsContextLogger(t *testing.T) {
	base := slog.New(logger.NewTestHandler(slog.LevelDebug))
	var got *slog.Logger
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = logger.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	h := chimiddleware.RequestID(NewLoggerMiddleware(base).LoggerMiddleware(next))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/demo.svg", nil))

	if got == nil || got == slog.Default() {
		t.Fatalf("expected a request-scoped logger in context")
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}
