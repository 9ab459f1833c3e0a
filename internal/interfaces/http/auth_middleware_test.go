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

	apphttp "github.com/budoverein/dojokasse/internal/interfaces/http"
	pkgjwt "github.com/budoverein/dojokasse/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test-Helfer
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-fuer-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testDojoID    = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "dojokasse-test"
	testExpMin    = 60
)

// buildTestApp baut eine minimale Fiber-App: AuthMiddleware parst das JWT,
// RequireRole prüft die Rolle, der Dummy-Handler antwortet mit 200.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole erzeugt ein JWT mit der angegebenen Rolle.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testDojoID, role, testIssuer, testExpMin)
	require.NoError(t, err, "das Test-Token muss sich erzeugen lassen")
	return "Bearer " + tok
}

// doRequest schickt GET /protected mit dem angegebenen Authorization-Header.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminKommtDurch(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireRole_KassenwartAufKassenRoute(t *testing.T) {
	app := buildTestApp("admin", "kassenwart")
	resp := doRequest(t, app, tokenForRole(t, "kassenwart"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"kassenwart muss auf Routen für admin oder kassenwart dürfen")
}

func TestRequireRole_TrainerBlockiert(t *testing.T) {
	app := buildTestApp("admin", "kassenwart")
	resp := doRequest(t, app, tokenForRole(t, "trainer"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"trainer darf keine SEPA-Aktionen ausführen")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenOhneRolle(t *testing.T) {
	app := buildTestApp("admin")
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testDojoID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestRequireRole_OhneAuthHeader(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_UngueltigesToken(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "Bearer token.ungueltig.hier")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware: Claims landen in den Locals
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtrahiertClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"dojo_id": apphttp.GetDojoID(c),
			"role":    apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "kassenwart"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testDojoID, body["dojo_id"])
	assert.Equal(t, "kassenwart", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// pkg/jwt: Generate/Parse-Integrität
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateUndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testDojoID, "trainer", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, dojoID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testDojoID, dojoID)
	assert.Equal(t, "trainer", role)
}

func TestJWT_AbgelaufenesToken(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testDojoID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "abgelaufenes Token muss einen Fehler liefern")
}

func TestJWT_FalschesSecret(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testDojoID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("ein-voellig-anderes-secret", tok)
	assert.Error(t, err, "falsches Secret muss das Token invalidieren")
}
