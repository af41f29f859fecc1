package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cybershield/internal/middlewares"
	"cybershield/internal/models"
	"cybershield/internal/services"
)

// fakeAuthService returns canned results so handler tests exercise only the
// HTTP layer: decoding, cookies and the status mapping.
type fakeAuthService struct {
	registerErr error
	loginErr    error
	verifyErr   error
	resetErr    error
	sendErr     error
}

func (f *fakeAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error) {
	if f.registerErr != nil {
		return nil, "", f.registerErr
	}
	return &models.User{ID: primitive.NewObjectID(), Name: req.Name, Email: req.Email, Role: models.RoleGeneral}, "signed-token", nil
}

func (f *fakeAuthService) Login(ctx context.Context, creds *models.Login) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "signed-token", nil
}

func (f *fakeAuthService) SendVerifyOTP(ctx context.Context, userID primitive.ObjectID) error {
	return f.sendErr
}

func (f *fakeAuthService) VerifyEmail(ctx context.Context, userID primitive.ObjectID, otp string) error {
	return f.verifyErr
}

func (f *fakeAuthService) SendResetOTP(ctx context.Context, email string) error {
	return f.sendErr
}

func (f *fakeAuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	return f.resetErr
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == middlewares.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestRegisterHandler(t *testing.T) {
	t.Run("sets the session cookie on success", func(t *testing.T) {
		h := NewAuthHandler(&fakeAuthService{})
		body := `{"name":"Alice","email":"alice@example.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		rr := httptest.NewRecorder()

		h.Register(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		cookie := sessionCookie(t, rr)
		require.NotNil(t, cookie)
		assert.Equal(t, "signed-token", cookie.Value)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("maps a taken email to 409", func(t *testing.T) {
		h := NewAuthHandler(&fakeAuthService{registerErr: services.ErrEmailTaken})
		body := `{"name":"Alice","email":"alice@example.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		rr := httptest.NewRecorder()

		h.Register(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Nil(t, sessionCookie(t, rr))
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		h := NewAuthHandler(&fakeAuthService{})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{"))
		rr := httptest.NewRecorder()

		h.Register(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := NewAuthHandler(&fakeAuthService{})
		body := `{"email":"alice@example.com","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		rr := httptest.NewRecorder()

		h.Login(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, sessionCookie(t, rr))
	})

	t.Run("invalid credentials map to 401", func(t *testing.T) {
		h := NewAuthHandler(&fakeAuthService{loginErr: services.ErrInvalidCredentials})
		body := `{"email":"alice@example.com","password":"wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		rr := httptest.NewRecorder()

		h.Login(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Nil(t, sessionCookie(t, rr))
	})
}

func TestLogoutHandler(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rr := httptest.NewRecorder()

	h.Logout(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	cookie := sessionCookie(t, rr)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestVerifyOtpHandler(t *testing.T) {
	userID := primitive.NewObjectID().Hex()

	t.Run("expired code maps to 410", func(t *testing.T) {
		h := NewAuthHandler(&fakeAuthService{verifyErr: services.ErrOTPExpired})
		body := `{"userId":"` + userID + `","otp":"123456"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-account", strings.NewReader(body))
		rr := httptest.NewRecorder()

		h.VerifyOtp(rr, req)
		assert.Equal(t, http.StatusGone, rr.Code)
	})

	t.Run("wrong code maps to 400", func(t *testing.T) {
		h := NewAuthHandler(&fakeAuthService{verifyErr: services.ErrInvalidOTP})
		body := `{"userId":"` + userID + `","otp":"000000"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-account", strings.NewReader(body))
		rr := httptest.NewRecorder()

		h.VerifyOtp(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing details", func(t *testing.T) {
		h := NewAuthHandler(&fakeAuthService{})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-account", strings.NewReader(`{"otp":"123456"}`))
		rr := httptest.NewRecorder()

		h.VerifyOtp(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("bad object id", func(t *testing.T) {
		h := NewAuthHandler(&fakeAuthService{})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-account", strings.NewReader(`{"userId":"nope","otp":"123456"}`))
		rr := httptest.NewRecorder()

		h.VerifyOtp(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestSendResetOtpHandler(t *testing.T) {
	// Unknown accounts are reported on this path, unlike login.
	h := NewAuthHandler(&fakeAuthService{sendErr: services.ErrUserNotFound})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/send-reset-otp", strings.NewReader(`{"email":"nobody@example.com"}`))
	rr := httptest.NewRecorder()

	h.SendResetOtp(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestResetPasswordHandler(t *testing.T) {
	t.Run("short password maps to 400", func(t *testing.T) {
		h := NewAuthHandler(&fakeAuthService{resetErr: services.ErrPasswordTooShort})
		body := `{"email":"alice@example.com","otp":"123456","newPassword":"short"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-password", strings.NewReader(body))
		rr := httptest.NewRecorder()

		h.ResetPassword(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("success", func(t *testing.T) {
		h := NewAuthHandler(&fakeAuthService{})
		body := `{"email":"alice@example.com","otp":"123456","newPassword":"new-password"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-password", strings.NewReader(body))
		rr := httptest.NewRecorder()

		h.ResetPassword(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
