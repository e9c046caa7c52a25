package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/Food-order-lu/CRM-Task-manager/internal/auth"
	"github.com/Food-order-lu/CRM-Task-manager/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testTOTPSecret = "JBSWY3DPEHPK3PXP"

func authRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/auth/login", Login)
	r.POST("/api/auth/verify-2fa", Verify2FA)
	r.GET("/api/auth/qr-code", QRCode)
	return r
}

func testCreds(t *testing.T) *auth.StaticStore {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewStaticStore([]auth.User{{
		Email:        "ana@example.com",
		Name:         "Ana",
		PasswordHash: string(hash),
		TOTPSecret:   testTOTPSecret,
	}})
}

func TestLogin_TwoStepFlow(t *testing.T) {
	setupEnv(t, config.Config{}, nil, testCreds(t))
	r := authRouter()

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "Ana@Example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var step1 struct {
		Requires2FA bool   `json:"requires2FA"`
		TempToken   string `json:"tempToken"`
	}
	decode(t, w, &step1)
	require.True(t, step1.Requires2FA)
	require.NotEmpty(t, step1.TempToken)

	// The temp token grants nothing beyond the second step.
	_, err := auth.ValidateStage(step1.TempToken, auth.StageSession)
	require.Error(t, err)

	code, err := totp.GenerateCode(testTOTPSecret, time.Now())
	require.NoError(t, err)

	w = doJSON(t, r, http.MethodPost, "/api/auth/verify-2fa", map[string]any{
		"tempToken": step1.TempToken,
		"token":     code,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var step2 struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		User    struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"user"`
	}
	decode(t, w, &step2)
	require.True(t, step2.Success)
	require.Equal(t, "ana@example.com", step2.User.Email)
	require.Equal(t, "Ana", step2.User.Name)

	claims, err := auth.ValidateStage(step2.Token, auth.StageSession)
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", claims.Email)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "session", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
}

func TestLogin_WrongPassword(t *testing.T) {
	setupEnv(t, config.Config{}, nil, testCreds(t))
	r := authRouter()

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "ana@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	setupEnv(t, config.Config{}, nil, testCreds(t))
	r := authRouter()

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerify2FA_WrongCode(t *testing.T) {
	setupEnv(t, config.Config{}, nil, testCreds(t))
	r := authRouter()

	temp, err := auth.GenerateTempToken("ana@example.com")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/auth/verify-2fa", map[string]any{
		"tempToken": temp,
		"token":     "000000",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerify2FA_SessionTokenRejectedAsTemp(t *testing.T) {
	setupEnv(t, config.Config{}, nil, testCreds(t))
	r := authRouter()

	session, err := auth.GenerateSessionToken("ana@example.com", "Ana")
	require.NoError(t, err)

	code, err := totp.GenerateCode(testTOTPSecret, time.Now())
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/auth/verify-2fa", map[string]any{
		"tempToken": session,
		"token":     code,
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerify2FA_BypassCode(t *testing.T) {
	setupEnv(t, config.Config{}, nil, testCreds(t))
	r := authRouter()

	temp, err := auth.GenerateTempToken("ana@example.com")
	require.NoError(t, err)

	// Disabled unless configured.
	w := doJSON(t, r, http.MethodPost, "/api/auth/verify-2fa", map[string]any{
		"tempToken": temp,
		"token":     "letmein",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	setupEnv(t, config.Config{TOTPBypassCode: "letmein"}, nil, testCreds(t))
	temp, err = auth.GenerateTempToken("ana@example.com")
	require.NoError(t, err)

	w = doJSON(t, r, http.MethodPost, "/api/auth/verify-2fa", map[string]any{
		"tempToken": temp,
		"token":     "letmein",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestQRCode(t *testing.T) {
	setupEnv(t, config.Config{}, nil, testCreds(t))
	r := authRouter()

	w := doJSON(t, r, http.MethodGet, "/api/auth/qr-code?email=ana@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		QRCode string `json:"qrCode"`
	}
	decode(t, w, &body)
	require.Contains(t, body.QRCode, "data:image/png;base64,")

	w = doJSON(t, r, http.MethodGet, "/api/auth/qr-code?email=nobody@example.com", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
