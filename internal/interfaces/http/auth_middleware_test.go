package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Ventas-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "ventas-api-test"
	testExpMin    = 60
)

// guardedApp monta una ruta con la misma cadena de middlewares que usan las rutas
// de bodega e inventario: AuthMiddleware + RequireRole.
func guardedApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/guarded",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
	)
	return app
}

func bearerFor(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func get(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Matriz de autorización sobre los roles de la app: las rutas de inventario
// permiten admin y bodeguero; vendedor solo vende.
func TestRequireRole_MatrizDeRoles(t *testing.T) {
	cases := []struct {
		name       string
		allowed    []string
		role       string
		wantStatus int
		wantCode   string
	}{
		{"admin en ruta de admin", []string{entity.RoleAdmin}, entity.RoleAdmin, http.StatusOK, ""},
		{"bodeguero en ruta de inventario", []string{entity.RoleAdmin, entity.RoleBodeguero}, entity.RoleBodeguero, http.StatusOK, ""},
		{"vendedor bloqueado en inventario", []string{entity.RoleAdmin, entity.RoleBodeguero}, entity.RoleVendedor, http.StatusForbidden, "FORBIDDEN"},
		{"bodeguero bloqueado en ruta de admin", []string{entity.RoleAdmin}, entity.RoleBodeguero, http.StatusForbidden, "FORBIDDEN"},
		{"token sin claim de rol", []string{entity.RoleAdmin}, "", http.StatusUnauthorized, "MISSING_ROLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := guardedApp(tc.allowed...)
			resp := get(t, app, "/guarded", bearerFor(t, tc.role))
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			if tc.wantCode != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Contains(t, string(body), tc.wantCode)
			}
		})
	}
}

func TestRequireRole_SinToken(t *testing.T) {
	app := guardedApp(entity.RoleAdmin)

	resp := get(t, app, "/guarded", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp2 := get(t, app, "/guarded", "Bearer token.invalido.aqui")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

// El middleware deja user_id, company_id y role en locals; de ahí salen el
// cajero y el tenant que consumen los handlers.
func TestAuthMiddleware_CargaLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})

	resp := get(t, app, "/me", bearerFor(t, entity.RoleVendedor))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, entity.RoleVendedor, body["role"])
}

func TestJWT_GenerateParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, entity.RoleBodeguero, testIssuer, testExpMin)
	require.NoError(t, err)

	userID, companyID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testCompanyID, companyID)
	assert.Equal(t, entity.RoleBodeguero, role)
}

func TestJWT_TokenRechazado(t *testing.T) {
	expirado, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)
	_, _, _, err = pkgjwt.Parse(testJWTSecret, expirado)
	assert.Error(t, err, "token expirado")

	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	_, _, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto")
}
