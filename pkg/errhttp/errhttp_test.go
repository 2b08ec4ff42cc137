package errhttp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/newsletter/pkg/logger"
	subdomain "github.com/ghuser/newsletter/services/subscription/domain"
	"github.com/ghuser/newsletter/services/subscription/domain/models"
)

func TestStatus(t *testing.T) {
	_, nameErr := models.ParseSubscriberName("<script>")

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid name", subdomain.ErrInvalidSubscriberName, http.StatusBadRequest},
		{"parsed name error", nameErr, http.StatusBadRequest},
		{"invalid email", fmt.Errorf("parse: %w", subdomain.ErrInvalidSubscriberEmail), http.StatusBadRequest},
		{"malformed token", subdomain.ErrInvalidSubscriptionToken, http.StatusBadRequest},
		{"unknown token", fmt.Errorf("confirm: %w", subdomain.ErrSubscriptionTokenNotFound), http.StatusUnauthorized},
		{"not found", subdomain.ErrSubscriberNotFound, http.StatusNotFound},
		{"already exists", subdomain.ErrSubscriberAlreadyExists, http.StatusConflict},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := Status(tt.err); got != tt.wantStatus {
				t.Fatalf("Status() = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, subdomain.ErrSubscriberNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != "subscriber not found" {
		t.Fatalf("unexpected error message %q", body["error"])
	}
	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatal("Content-Type header not set")
	}
}

func TestResponder_HidesInternalErrorsInProduction(t *testing.T) {
	var buf bytes.Buffer
	rs := Responder{Log: logger.NewWithWriter(&buf, "info"), Production: true}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/subscriptions", http.NoBody)
	rs.Write(w, r, errors.New("pq: connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "connection refused") {
		t.Fatal("internal error message leaked to client")
	}
	if !strings.Contains(buf.String(), "connection refused") {
		t.Fatal("expected internal error to be logged")
	}
}

func TestResponder_ClientErrorsKeepMessage(t *testing.T) {
	var buf bytes.Buffer
	rs := Responder{Log: logger.NewWithWriter(&buf, "info"), Production: true}

	_, nameErr := models.ParseSubscriberName("a/b")
	w := httptest.NewRecorder()
	rs.Write(w, httptest.NewRequest(http.MethodPost, "/subscriptions", http.NoBody), nameErr)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "is not a valid subscriber name.") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
	if buf.Len() != 0 {
		t.Fatalf("client errors must not be logged, got %s", buf.String())
	}
}
