// Package dependency provides dependency injection for the application.
package dependency

import (
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	infradb "github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/cache"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// Options overrides the default adapters. Zero values keep the defaults.
type Options struct {
	// Redis enables the statistics cache when set.
	Redis *goredis.Client
	// PasswordService replaces the bcrypt service, e.g. with a cheaper cost in tests.
	PasswordService adapter.PasswordService
	// TokenService replaces the JWT service, e.g. with a controllable clock in tests.
	TokenService adapter.TokenService
	// HealthCheck reports database reachability for /api/health.
	// Defaults to a bounded ping of the gorm connection.
	HealthCheck func() bool
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)

	// Create adapters/services
	passwordService := opts.PasswordService
	if passwordService == nil {
		passwordService = adapters.NewPasswordService()
	}
	tokenService := opts.TokenService
	if tokenService == nil {
		tokenService = adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiry)
	}
	var statsCache adapter.StatisticsCache
	if opts.Redis != nil {
		statsCache = cache.NewStatisticsCache(opts.Redis, cfg.Cache.StatisticsTTL)
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	verifyTokenUseCase := auth.NewVerifyTokenUseCase(tokenService)
	currentUserUseCase := auth.NewGetCurrentUserUseCase(userRepo)

	// Create expense use cases
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)
	getExpenseUseCase := expense.NewGetExpenseUseCase(expenseRepo)
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, statsCache)
	updateExpenseUseCase := expense.NewUpdateExpenseUseCase(expenseRepo, statsCache)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo, statsCache)
	statisticsUseCase := expense.NewGetStatisticsUseCase(expenseRepo, statsCache)
	listCategoriesUseCase := expense.NewListCategoriesUseCase(expenseRepo)

	// Create controllers
	healthCheck := opts.HealthCheck
	if healthCheck == nil {
		healthCheck = func() bool { return infradb.Ping(db) }
	}
	healthController := controller.NewHealthController(healthCheck)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		currentUserUseCase,
	)

	expenseController := controller.NewExpenseController(
		listExpensesUseCase,
		getExpenseUseCase,
		createExpenseUseCase,
		updateExpenseUseCase,
		deleteExpenseUseCase,
		statisticsUseCase,
		listCategoriesUseCase,
	)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(verifyTokenUseCase)

	// Create router
	r := router.NewRouter(healthController, authController, expenseController, authMiddleware, cfg.Server.CORSAllowedOrigins)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
