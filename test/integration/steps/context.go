// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/infra/dependency"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
	"github.com/expense-tracker/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server   *httptest.Server
	client   *http.Client
	response *response

	// Request building
	headers     map[string]string
	accessToken string

	// Users and their tokens, by username
	tokens  map[string]string
	userIDs map[string]uuid.UUID

	lastExpenseID uuid.UUID

	db    *mock.Db
	clock *mock.Time
}

type response struct {
	status int
	raw    []byte
	body   any
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario wires a fresh server over the shared database and registers all steps.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerSetupSteps(ctx)
	registerRequestSteps(ctx)
	registerResponseSteps(ctx)
	registerDatabaseSteps(ctx)
}

func newTestContext() (*TestContext, error) {
	tc := &TestContext{
		client:  &http.Client{Timeout: 10 * time.Second},
		headers: make(map[string]string),
		tokens:  make(map[string]string),
		userIDs: make(map[string]uuid.UUID),
		clock:   mock.NewTime(),
		db: mock.NewDb(
			mock.Table{Name: "expenses", Model: &model.ExpenseModel{}},
			mock.Table{Name: "users", Model: &model.UserModel{}},
		),
	}

	if err := tc.db.ClearDB(); err != nil {
		return nil, err
	}
	redisClient := mock.NewRedis()
	if err := mock.ClearRedis(redisClient); err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		JWT:    config.JWTConfig{Secret: testJWTSecret, Expiry: 24 * time.Hour},
		Cache:  config.CacheConfig{StatisticsTTL: 5 * time.Minute},
	}
	injector := dependency.NewInjector(cfg, tc.db.DbConn, dependency.Options{
		Redis:           redisClient,
		PasswordService: adapters.NewPasswordServiceWithCost(bcrypt.MinCost),
		TokenService:    adapters.NewTokenService(testJWTSecret, cfg.JWT.Expiry, adapters.WithClock(tc.clock.Now)),
	})

	tc.server = httptest.NewServer(injector.Router.Setup("test"))
	return tc, nil
}

// replacePlaceholders fills {{expense_id}} and {{user_id:<name>}} in paths and bodies.
func (tc *TestContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{expense_id}}", tc.lastExpenseID.String())
	for name, id := range tc.userIDs {
		content = strings.ReplaceAll(content, "{{user_id:"+name+"}}", id.String())
	}
	return content
}

func (tc *TestContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, tc.server.URL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}
	for key, value := range tc.headers {
		req.Header.Set(key, value)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	tc.response = &response{status: resp.StatusCode, raw: raw}

	// Keep numbers as written so money compares as "12.50".
	var decoded any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&decoded); err != nil {
		tc.response.body = string(raw)
		return nil
	}
	tc.response.body = decoded

	// Remember the last expense returned so later steps can address it.
	if obj, ok := decoded.(map[string]any); ok {
		if _, isExpense := obj["amount"]; isExpense {
			if id, err := uuid.Parse(fmt.Sprint(obj["id"])); err == nil {
				tc.lastExpenseID = id
			}
		}
	}

	return nil
}
