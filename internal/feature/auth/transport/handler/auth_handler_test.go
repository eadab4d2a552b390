package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task_backend/internal/api"
	"task_backend/internal/feature/auth/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockAuthUsecase はAuthUsecaseのモック実装です。
type mockAuthUsecase struct {
	LoginFunc func(ctx context.Context, username, password string) (string, error)
}

func (m *mockAuthUsecase) Login(ctx context.Context, username, password string) (string, error) {
	return m.LoginFunc(ctx, username, password)
}

func postLogin(uc AuthUsecase, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.POST("/login", NewAuthHandler(uc).Login)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestLogin_Success はログイン成功時にアクセストークンとbearer種別が返ることを検証します。
func TestLogin_Success(t *testing.T) {
	t.Parallel()

	uc := &mockAuthUsecase{LoginFunc: func(ctx context.Context, username, password string) (string, error) {
		assert.Equal(t, "alice", username)
		assert.Equal(t, "password123", password)
		return "signed-token", nil
	}}

	w := postLogin(uc, `{"username":"alice","password":"password123"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var got api.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "signed-token", got.AccessToken)
	assert.Equal(t, api.Bearer, got.TokenType)
}

// TestLogin_InvalidCredentials は認証失敗時に401とINVALID_CREDENTIALSが返ることを検証します。
func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	uc := &mockAuthUsecase{LoginFunc: func(ctx context.Context, username, password string) (string, error) {
		return "", usecase.ErrInvalidCredentials
	}}

	w := postLogin(uc, `{"username":"alice","password":"wrong-password"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var got api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "INVALID_CREDENTIALS", got.Code)
	assert.Equal(t, "invalid username or password", got.Error)
}

// TestLogin_BadRequest は不正なリクエストボディでユースケースが呼ばれず400が返ることを検証します。
func TestLogin_BadRequest(t *testing.T) {
	t.Parallel()

	uc := &mockAuthUsecase{LoginFunc: func(ctx context.Context, username, password string) (string, error) {
		t.Fatal("Login must not be called")
		return "", nil
	}}

	for _, body := range []string{``, `{`, `{"username":"alice"}`, `{"password":"password123"}`} {
		w := postLogin(uc, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}

// TestLogin_InternalError は予期しないエラーが詳細を隠した500になることを検証します。
func TestLogin_InternalError(t *testing.T) {
	t.Parallel()

	uc := &mockAuthUsecase{LoginFunc: func(ctx context.Context, username, password string) (string, error) {
		return "", errors.New("db down at 10.0.0.5")
	}}

	w := postLogin(uc, `{"username":"alice","password":"password123"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}
