package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Post("/pipeline/run", AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	app := newProtectedApp()

	req := httptest.NewRequest("POST", "/pipeline/run", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequiredAcceptsAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "chave-secreta")
	app := newProtectedApp()

	req := httptest.NewRequest("POST", "/pipeline/run", nil)
	req.Header.Set("X-API-KEY", "chave-secreta")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthRequiredRejectsWrongAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "chave-secreta")
	app := newProtectedApp()

	req := httptest.NewRequest("POST", "/pipeline/run", nil)
	req.Header.Set("X-API-KEY", "outra-chave")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequiredAcceptsValidJWT(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo-de-teste")
	app := newProtectedApp()

	claims := &Claims{
		UserID: 1,
		Email:  "ops@funnelworks.io",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("segredo-de-teste"))
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/pipeline/run", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthRequiredRejectsExpiredJWT(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo-de-teste")
	app := newProtectedApp()

	claims := &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("segredo-de-teste"))
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/pipeline/run", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
