package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, c claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func validClaims() claims {
	return claims{
		CompanyID: "company-1",
		Role:      string(domain.RoleProjectManager),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func authHandler() (http.Handler, *domain.Principal) {
	captured := &domain.Principal{}
	h := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := PrincipalFrom(r.Context()); ok {
			*captured = *p
		}
		w.WriteHeader(http.StatusOK)
	}))
	return h, captured
}

func TestAuthenticate_Success(t *testing.T) {
	h, captured := authHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims()))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want status 200, got %d", rec.Code)
	}
	if captured.UserID != "user-1" {
		t.Errorf("want user_id user-1, got %s", captured.UserID)
	}
	if captured.CompanyID != "company-1" {
		t.Errorf("want company_id company-1, got %s", captured.CompanyID)
	}
	if captured.Role != domain.RoleProjectManager {
		t.Errorf("want role project_manager, got %s", captured.Role)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	h, _ := authHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("want status 401, got %d", rec.Code)
	}
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	h, _ := authHandler()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims())
	signed, err := token.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("want status 401, got %d", rec.Code)
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	h, _ := authHandler()

	c := validClaims()
	c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, c))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("want status 401, got %d", rec.Code)
	}
}

func TestAuthenticate_UnknownRole(t *testing.T) {
	h, _ := authHandler()

	c := validClaims()
	c.Role = "intern"

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, c))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("want status 401, got %d", rec.Code)
	}
}
