package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	models "quizify/internal/models"
	utility "quizify/internal/utility"
)

func TestAuthenticationRejectsMissingToken(t *testing.T) {
	handler := Authentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached without a token")
	}))

	req := httptest.NewRequest("GET", "/quizzes", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticationRejectsInvalidToken(t *testing.T) {
	utility.SECRET_KEY = "test-secret"

	handler := Authentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached with a bad token")
	}))

	req := httptest.NewRequest("GET", "/quizzes", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticationStoresUserInContext(t *testing.T) {
	utility.SECRET_KEY = "test-secret"

	token, _, err := utility.GenerateAllTokens("s@x.com", "Sam", models.RoleStudent, "uid-42")
	if err != nil {
		t.Fatal(err)
	}

	var got models.User
	handler := Authentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(r)
		if !ok {
			t.Fatal("no user in request context")
		}
		got = user
	}))

	req := httptest.NewRequest("GET", "/quizzes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got.User_id != "uid-42" || got.Role != models.RoleStudent {
		t.Errorf("user = %+v", got)
	}
	if got.Email == nil || *got.Email != "s@x.com" {
		t.Errorf("email = %v", got.Email)
	}
}
