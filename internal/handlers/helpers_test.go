package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/lenstock/internal/config"
	"github.com/example/lenstock/internal/database"
	"github.com/example/lenstock/internal/middleware"
	"github.com/example/lenstock/internal/models"
	"github.com/example/lenstock/internal/routes"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	// Shared-cache in-memory database, one per test, so the gorm pool sees
	// a single store.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:         "test-secret",
		SessionExpires:    time.Hour,
		ExportDir:         t.TempDir(),
		LowStockThreshold: 5,
	}

	app := fiber.New(fiber.Config{ErrorHandler: routes.ErrorHandler})
	routes.Register(app, db, cfg)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, session string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: session})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func registerUser(t *testing.T, app *fiber.App, name, email, password string) {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodPost, "/api/registro", fiber.Map{
		"nome":  name,
		"email": email,
		"senha": password,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func loginSession(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodPost, "/api/login", fiber.Map{
		"email": email,
		"senha": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie.Value
		}
	}

	t.Fatal("login response did not set a session cookie")
	return ""
}

func createLens(t *testing.T, app *fiber.App, session string, body fiber.Map) models.Lens {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodPost, "/api/lentes", body, session)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var lens models.Lens
	decodeBody(t, resp, &lens)
	return lens
}
