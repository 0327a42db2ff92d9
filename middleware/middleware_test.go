// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/dishvote/models"
)

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusCreated, map[string]string{"hello": "world"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %s, want application/json", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("body = %v", body)
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, "Round not found")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	var body models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "Not Found" {
		t.Errorf("error = %s, want Not Found", body.Error)
	}
	if body.Message != "Round not found" {
		t.Errorf("message = %s", body.Message)
	}
}

func TestParseJSONBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"username":"alice"}`))

	var body models.ClaimUsernameRequest
	if err := ParseJSONBody(req, &body); err != nil {
		t.Fatalf("ParseJSONBody() error = %v", err)
	}
	if body.Username != "alice" {
		t.Errorf("username = %s, want alice", body.Username)
	}

	bad := httptest.NewRequest("POST", "/", strings.NewReader("not json"))
	if err := ParseJSONBody(bad, &body); err == nil {
		t.Error("ParseJSONBody() accepted invalid JSON")
	}
}

func TestWithLogging(t *testing.T) {
	called := false
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/health", nil))

	if !called {
		t.Error("wrapped handler was not called")
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", w.Code, http.StatusTeapot)
	}
}

func TestCORSPreflight(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the inner handler")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/rounds", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	CORS(inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %s", got)
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "X-Voter-Token") {
		t.Error("Allow-Headers missing X-Voter-Token")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr with port", "192.0.2.1:54321", nil, "192.0.2.1"},
		{"x-real-ip", "10.0.0.1:80", map[string]string{"X-Real-IP": "198.51.100.9"}, "198.51.100.9"},
		{"x-forwarded-for single", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.5"}, "203.0.113.5"},
		{"x-forwarded-for chain", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"}, "203.0.113.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req); got != tt.want {
				t.Errorf("GetClientIP() = %s, want %s", got, tt.want)
			}
		})
	}
}
