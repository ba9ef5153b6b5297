package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/siher/webpage-publisher/internal/api/middleware"
	"github.com/siher/webpage-publisher/internal/core/domain"
	"github.com/siher/webpage-publisher/internal/core/ports"
)

type stubAuthService struct {
	approveErr error
	loginRes   *ports.LoginResult
	loginErr   error
	claims     *ports.TokenClaims
	tokenErr   error
}

func (s *stubAuthService) Approve(_ context.Context, email string) (*domain.User, error) {
	if s.approveErr != nil {
		return nil, s.approveErr
	}
	return &domain.User{ID: "u1", Email: strings.ToLower(email)}, nil
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.LoginResult, error) {
	return s.loginRes, s.loginErr
}

func (s *stubAuthService) ValidateToken(string) (*ports.TokenClaims, error) {
	return s.claims, s.tokenErr
}

func TestAuthHandlerApprove(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false, time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/approve?email=Ada@Example.com", nil)
	rec := httptest.NewRecorder()

	if err := h.Approve(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Approve returned %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ada@example.com") {
		t.Errorf("body = %s, want the created email", rec.Body.String())
	}
}

func TestAuthHandlerApproveMissingEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false, time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/approve", nil)
	err := h.Approve(e.NewContext(req, httptest.NewRecorder()))

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400 HTTPError", err)
	}
}

func TestAuthHandlerLoginSetsSessionCookie(t *testing.T) {
	svc := &stubAuthService{loginRes: &ports.LoginResult{
		Token:           "signed-token",
		User:            &domain.User{ID: "u1", Email: "ada@example.com"},
		FormattedDomain: "ada.siher.eth.link",
	}}
	h := NewAuthHandler(svc, false, time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ada@example.com","password":"pw"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Login returned %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	res := rec.Result()
	var session *http.Cookie
	for _, cookie := range res.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			session = cookie
		}
	}
	if session == nil {
		t.Fatal("session cookie not set")
	}
	if session.Value != "signed-token" || !session.HttpOnly {
		t.Errorf("cookie = %+v, want HTTP-only signed-token", session)
	}
	if session.SameSite != http.SameSiteLaxMode || session.Secure {
		t.Errorf("cookie = %+v, want Lax and not Secure outside production", session)
	}

	var body struct {
		User struct {
			Domain string `json:"domain"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.User.Domain != "ada.siher.eth.link" {
		t.Errorf("user domain = %q, want the formatted site name", body.User.Domain)
	}
}

func TestAuthHandlerLoginSecureCookie(t *testing.T) {
	svc := &stubAuthService{loginRes: &ports.LoginResult{
		Token: "signed-token",
		User:  &domain.User{ID: "u1", Email: "ada@example.com"},
	}}
	h := NewAuthHandler(svc, true, time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ada@example.com","password":"pw"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Login returned %v", err)
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			if !cookie.Secure || cookie.SameSite != http.SameSiteNoneMode {
				t.Errorf("cookie = %+v, want Secure with SameSite=None", cookie)
			}
			return
		}
	}
	t.Fatal("session cookie not set")
}

func TestAuthHandlerLoginMissingCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false, time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ada@example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	if err := h.Login(e.NewContext(req, httptest.NewRecorder())); err != domain.ErrInvalidCredentials {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthHandlerValidateToken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{claims: &ports.TokenClaims{UserID: "u1"}}, false, time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/validate-token", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "signed-token"})
	rec := httptest.NewRecorder()

	if err := h.ValidateToken(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ValidateToken returned %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Errorf("body = %s, want success true", rec.Body.String())
	}
}

func TestAuthHandlerValidateTokenMissingCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false, time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/validate-token", nil)
	err := h.ValidateToken(e.NewContext(req, httptest.NewRecorder()))

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401 HTTPError", err)
	}
	if he.Message != "No token provided" {
		t.Errorf("message = %v, want No token provided", he.Message)
	}
}
