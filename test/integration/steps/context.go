// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/caresync/backend/config"
	"github.com/caresync/backend/internal/infra/dependency"
	"github.com/caresync/backend/test/integration/mock"
)

// suite holds the collaborators shared by every scenario. The server is
// started once; scenarios reset state instead of rebuilding it.
type suite struct {
	db       *mock.Db
	clock    *mock.Time
	provider *mock.ApiMock
	injector *dependency.Injector
	server   *httptest.Server
}

var shared *suite

// TestContext holds the test state for each scenario.
type TestContext struct {
	*suite

	client  *http.Client
	headers map[string]string

	accessToken  string
	refreshToken string

	response *response
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

		s, err := newSuite()
		if err != nil {
			panic(fmt.Sprintf("failed to start integration suite: %v", err))
		}
		shared = s
	})

	ctx.AfterSuite(func() {
		if shared == nil {
			return
		}
		shared.server.Close()
		shared.provider.Close()
	})
}

func newSuite() (*suite, error) {
	provider := mock.NewApiServer()
	provider.Start()

	env := map[string]string{
		"ENV":                  "test",
		"JWT_SECRET":           "test-jwt-secret-key-for-testing-purposes",
		"BCRYPT_COST":          "4",
		"RESEND_API_KEY":       "re_test_key",
		"RESEND_BASE_URL":      provider.GetUrl(),
		"RESEND_FROM_EMAIL":    "reminders@caresync.test",
		"EMAIL_WORKER_ENABLED": "false",
		"SCHEDULER_ENABLED":    "false",
	}
	for key, value := range env {
		if err := os.Setenv(key, value); err != nil {
			return nil, err
		}
	}
	cfg := config.Load()

	db := mock.NewDb(mock.Models())
	clock := mock.NewTime()

	injector, err := dependency.NewInjector(cfg, db.DbConn, dependency.Options{
		RedisClient: mock.NewRedis(),
		Clock:       clock,
	})
	if err != nil {
		return nil, err
	}

	return &suite{
		db:       db,
		clock:    clock,
		provider: provider,
		injector: injector,
		server:   httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
	}, nil
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &TestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if shared == nil {
			return ctx, fmt.Errorf("integration suite is not initialized")
		}
		*tc = TestContext{
			suite:   shared,
			client:  shared.server.Client(),
			headers: make(map[string]string),
		}

		if err := tc.db.ClearDB(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(mock.NewRedis()); err != nil {
			return ctx, err
		}
		tc.clock.Reset()
		tc.provider.Reset()
		tc.provider.SetResponse(http.MethodPost, "/emails", http.StatusOK, map[string]any{"id": "re_mock_email"})

		return SetTestContext(ctx, tc), nil
	})

	tc.registerAPISteps(ctx)
	tc.registerResponseSteps(ctx)
	tc.registerDomainSteps(ctx)
}
