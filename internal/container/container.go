package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"benchgraph/adapters/csvfile"
	"benchgraph/adapters/excel"
	"benchgraph/adapters/memory"
	"benchgraph/adapters/postgres"
	"benchgraph/adapters/render"
	"benchgraph/app"
	"benchgraph/internal"
	"benchgraph/internal/config"
	"benchgraph/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Adapters
	Reader   *csvfile.Reader
	Writer   *csvfile.Writer
	Exporter *excel.Exporter
	HTML     *render.HTMLRenderer
	PNG      *render.PNGRenderer
	RunRepo  ports.RunRepository

	// Services
	Pipeline *app.PipelineService
}

// New creates a container with the file and rendering adapters. The run
// ledger is in memory until InitWithDatabase is called.
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	}

	html, err := render.NewHTMLRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chart renderer: %w", err)
	}

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Reader:   csvfile.NewReader(logger),
		Writer:   csvfile.NewWriter(),
		Exporter: excel.NewExporter(),
		HTML:     html,
		PNG:      render.NewPNGRenderer(),
		RunRepo:  memory.NewRunRepository(),
	}
	c.initServices()
	return c, nil
}

// InitWithDatabase switches the run ledger to PostgreSQL
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}
	c.DB = db
	c.RunRepo = postgres.NewRunRepository(db)
	c.initServices()
	c.Logger.Debug("run ledger stored in postgres")
	return nil
}

// Connect opens DATABASE_URL when configured. Without it the container keeps
// the in-memory ledger and Connect is a no-op.
func (c *Container) Connect(ctx context.Context) error {
	if c.Config.Database.URL == "" {
		return nil
	}
	db, err := postgres.Connect(ctx, c.Config.Database.URL)
	if err != nil {
		return err
	}
	if err := c.InitWithDatabase(db); err != nil {
		db.Close()
		return err
	}
	return nil
}

func (c *Container) initServices() {
	c.Pipeline = app.NewPipelineService(app.PipelineDeps{
		Source:   c.Reader,
		Writer:   c.Writer,
		Exporter: c.Exporter,
		HTML:     c.HTML,
		PNG:      c.PNG,
		Runs:     c.RunRepo,
		Logger:   c.Logger,
	})
}

// Close releases the database connection if one is open
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
