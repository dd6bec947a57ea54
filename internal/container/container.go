package container

import (
	"fmt"

	"ikigai/adapters/email"
	"ikigai/adapters/pdf"
	"ikigai/adapters/postgres"
	stripeadapter "ikigai/adapters/stripe"
	"ikigai/ai"
	"ikigai/app"
	"ikigai/internal"
	"ikigai/internal/admin"
	"ikigai/internal/config"
	"ikigai/internal/errors"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	SessionRepo *postgres.SessionRepositoryImpl

	// Application services
	Sessions *app.SessionService
	Reports  *app.ReportService
	Payments *app.PaymentService

	// Admin components
	Stats    *admin.StatsService
	Exporter *admin.Exporter
}

// New wires the full dependency graph from configuration
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.NewDefaultLogger()

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	if err := postgres.Migrate(db); err != nil {
		return nil, err
	}

	sessionRepo := postgres.NewSessionRepository(db)
	analyzer := ai.NewGeminiClient(cfg.AI)
	renderer := pdf.NewRenderer()
	sender := email.NewResendSender(cfg.Email)
	checkout := stripeadapter.NewCheckoutProvider(cfg.Payments)

	sessions := app.NewSessionService(sessionRepo, analyzer, logger)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		SessionRepo: sessionRepo,
		Sessions:    sessions,
		Reports:     app.NewReportService(sessionRepo, renderer, sender, logger),
		Payments:    app.NewPaymentService(checkout, sessions, cfg.Server.FrontendURL, logger),
		Stats:       admin.NewStatsService(sessionRepo, cfg.Payments.PriceBasic, logger),
		Exporter:    admin.NewExporter(sessionRepo, logger),
	}, nil
}

// Close releases the container's resources
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
