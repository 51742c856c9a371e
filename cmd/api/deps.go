package main

import (
	"log"

	"bursar/internal/domain/analytics"
	"bursar/internal/infrastructure/postgres"
	httphandlers "bursar/internal/interfaces/http"
	"bursar/internal/shared/auth"
	"bursar/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler        *httphandlers.AuthHandler
	TransactionHandler *httphandlers.TransactionHandler
	ReminderHandler    *httphandlers.ReminderHandler
	BudgetHandler      *httphandlers.BudgetHandler
	AnalyticsHandler   *httphandlers.AnalyticsHandler
	HealthHandler      *httphandlers.HealthHandler

	// Auth
	JWT *auth.JWT

	// Repositories (for middleware and the notifier)
	UserRepo     *postgres.UserRepository
	ReminderRepo *postgres.ReminderRepository
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	db, err := postgres.New(cfg.Database.ConnectionString(), postgres.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if err := postgres.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	userRepo := postgres.NewUserRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	reminderRepo := postgres.NewReminderRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)

	analyticsService := analytics.NewService(transactionRepo, budgetRepo)

	jwt := auth.NewJWT(cfg.JWT.Secret, cfg.JWT.TokenTTL)

	return &Dependencies{
		DB:                 db,
		AuthHandler:        httphandlers.NewAuthHandler(userRepo, budgetRepo, jwt),
		TransactionHandler: httphandlers.NewTransactionHandler(transactionRepo),
		ReminderHandler:    httphandlers.NewReminderHandler(reminderRepo),
		BudgetHandler:      httphandlers.NewBudgetHandler(budgetRepo),
		AnalyticsHandler:   httphandlers.NewAnalyticsHandler(analyticsService),
		HealthHandler:      httphandlers.NewHealthHandler(db),
		JWT:                jwt,
		UserRepo:           userRepo,
		ReminderRepo:       reminderRepo,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
