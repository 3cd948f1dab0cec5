package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/dependency"
	"github.com/expense-tracker/backend/internal/integration/adapters"
)

// newTestEngine wires the full API over a private in-memory database.
func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	return newTestEngineWithOptions(t, dependency.Options{})
}

// newTestEngineWithOptions is newTestEngine with adapter overrides. The cheap
// bcrypt cost is applied unless opts names a password service.
func newTestEngineWithOptions(t *testing.T, opts dependency.Options) *gin.Engine {
	t.Helper()

	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(sqlDB, gdb.Dialector.Name()))

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		JWT:    config.JWTConfig{Secret: "test-secret", Expiry: time.Hour},
	}
	if opts.PasswordService == nil {
		opts.PasswordService = adapters.NewPasswordServiceWithCost(bcrypt.MinCost)
	}
	injector := dependency.NewInjector(cfg, gdb, opts)
	return injector.Router.Setup("test")
}

// doRequest performs a request and decodes a JSON object response when there is one.
func doRequest(t *testing.T, engine *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var decoded map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

// doRequestWithHeader performs a GET with a raw Authorization header.
func doRequestWithHeader(t *testing.T, engine *gin.Engine, path, authorization string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var decoded map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

// registerUser registers username and returns its bearer token.
func registerUser(t *testing.T, engine *gin.Engine, username string) string {
	t.Helper()

	w, resp := doRequest(t, engine, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return resp["token"].(string)
}

// createExpense creates an expense and returns its id.
func createExpense(t *testing.T, engine *gin.Engine, token string, amount any, category, date string) string {
	t.Helper()

	w, resp := doRequest(t, engine, http.MethodPost, "/api/expenses", token, map[string]any{
		"amount":      amount,
		"description": category + " purchase",
		"category":    category,
		"date":        date,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return resp["id"].(string)
}

func fieldNames(resp map[string]any) []string {
	raw, _ := resp["errors"].([]any)
	names := make([]string, 0, len(raw))
	for _, item := range raw {
		if fe, ok := item.(map[string]any); ok {
			names = append(names, fe["field"].(string))
		}
	}
	return names
}
