package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	jwtSecret = []byte("test-secret-key-for-testing")

	token, err := issueToken(123)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	userID, ok := parseUserIDFromJWT(token)
	if !ok {
		t.Fatal("Expected token to parse")
	}
	if userID != 123 {
		t.Errorf("Expected userID 123, got %d", userID)
	}
}

func TestParseUserIDFromJWTRejectsGarbage(t *testing.T) {
	jwtSecret = []byte("test-secret-key-for-testing")

	if _, ok := parseUserIDFromJWT("not-a-token"); ok {
		t.Error("Expected garbage token to be rejected")
	}
}

func TestGetUserIDFromRequest(t *testing.T) {
	jwtSecret = []byte("test-secret-key-for-testing")

	token, err := issueToken(7)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	t.Run("Valid Authorization header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		userID, ok := getUserIDFromRequest(req)
		if !ok {
			t.Error("Expected getUserIDFromRequest to succeed")
		}
		if userID != 7 {
			t.Errorf("Expected userID 7, got %d", userID)
		}
	})

	t.Run("Valid token query parameter", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test?token="+token, nil)

		userID, ok := getUserIDFromRequest(req)
		if !ok {
			t.Error("Expected getUserIDFromRequest to succeed with query param")
		}
		if userID != 7 {
			t.Errorf("Expected userID 7, got %d", userID)
		}
	})

	t.Run("No authentication", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)

		if _, ok := getUserIDFromRequest(req); ok {
			t.Error("Expected getUserIDFromRequest to fail")
		}
	})

	t.Run("Invalid Authorization header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer invalid_token")

		if _, ok := getUserIDFromRequest(req); ok {
			t.Error("Expected getUserIDFromRequest to fail with invalid token")
		}
	})

	t.Run("Malformed Authorization header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "NotBearer "+token)

		if _, ok := getUserIDFromRequest(req); ok {
			t.Error("Expected getUserIDFromRequest to fail with malformed header")
		}
	})

	t.Run("Token signed with wrong secret", func(t *testing.T) {
		wrongToken, err := issueToken(7)
		if err != nil {
			t.Fatalf("Failed to issue token: %v", err)
		}
		jwtSecret = []byte("a-different-secret")
		defer func() { jwtSecret = []byte("test-secret-key-for-testing") }()

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer "+wrongToken)

		if _, ok := getUserIDFromRequest(req); ok {
			t.Error("Expected token signed with old secret to be rejected")
		}
	})
}

func TestAuthenticateMiddleware(t *testing.T) {
	jwtSecret = []byte("test-secret-key-for-testing")

	var gotUserID int
	handler := authenticate(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.Context().Value(userIDKey).(int)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("passes user id through context", func(t *testing.T) {
		token, err := issueToken(99)
		if err != nil {
			t.Fatalf("Failed to issue token: %v", err)
		}

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if gotUserID != 99 {
			t.Errorf("expected userID 99 in context, got %d", gotUserID)
		}
	})

	t.Run("rejects missing token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})
}

// Validation paths below never reach the store, so a nil store is safe.

func TestRegisterValidation(t *testing.T) {
	handler := registerHandler(nil, nil)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/register", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", w.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		w := post("{not json")
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		w := post(`{"email":"a@example.com","password":"password123"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
		var resp map[string]string
		json.NewDecoder(w.Body).Decode(&resp)
		if resp["error"] != "missing_fields" {
			t.Errorf("expected missing_fields, got %v", resp)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		w := post(`{"name":"John","email":"invalid-email","password":"password123"}`)
		var resp map[string]string
		json.NewDecoder(w.Body).Decode(&resp)
		if w.Code != http.StatusBadRequest || resp["error"] != "invalid_email" {
			t.Errorf("expected 400 invalid_email, got %d %v", w.Code, resp)
		}
	})

	t.Run("short password", func(t *testing.T) {
		w := post(`{"name":"John","email":"john@example.com","password":"123"}`)
		var resp map[string]string
		json.NewDecoder(w.Body).Decode(&resp)
		if w.Code != http.StatusBadRequest || resp["error"] != "weak_password" {
			t.Errorf("expected 400 weak_password, got %d %v", w.Code, resp)
		}
	})
}

func TestLoginValidation(t *testing.T) {
	handler := loginHandler(nil)

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", w.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":"a@example.com"}`))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}
