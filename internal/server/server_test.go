package server_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/qrcodegen/qrcodegen/internal/config"
	"github.com/qrcodegen/qrcodegen/internal/server"
)

func newTestServer() *server.Server {
	return server.New(config.Defaults())
}

func post(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/v1/qrcode", strings.NewReader(body))
	w := httptest.NewRecorder()
	newTestServer().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	newTestServer().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Errorf("GET /healthz status: got %d, want 200", w.Code)
	}
}

func TestGenerateRejectsGet(t *testing.T) {
	req := httptest.NewRequest("GET", "/v1/qrcode", nil)
	w := httptest.NewRecorder()
	newTestServer().ServeHTTP(w, req)

	if w.Code != 405 {
		t.Errorf("GET /v1/qrcode status: got %d, want 405", w.Code)
	}
}

func TestGenerateMissingText(t *testing.T) {
	w := post(`{"format":"svg"}`)
	if w.Code != 400 {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestGenerateInvalidJSON(t *testing.T) {
	w := post(`not json`)
	if w.Code != 400 {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestGenerateSVGDefault(t *testing.T) {
	w := post(`{"text":"hello"}`)
	if w.Code != 200 {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	body, _ := io.ReadAll(w.Result().Body)
	if !strings.Contains(string(body), "<svg") {
		t.Errorf("body does not contain <svg: %q", body)
	}
}

func TestGeneratePNG(t *testing.T) {
	w := post(`{"text":"hello","format":"png","scale":3}`)
	if w.Code != 200 {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
}

func TestGenerateJSONMatrix(t *testing.T) {
	w := post(`{"text":"hello","format":"json"}`)
	if w.Code != 200 {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	body, _ := io.ReadAll(w.Result().Body)
	if !strings.Contains(string(body), `"modules"`) {
		t.Errorf("body does not contain modules field: %q", body)
	}
}

func TestGenerateBadFormat(t *testing.T) {
	w := post(`{"text":"hello","format":"bmp"}`)
	if w.Code != 400 {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestGenerateBadECL(t *testing.T) {
	w := post(`{"text":"hello","ecl":"ultra"}`)
	if w.Code != 400 {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}
