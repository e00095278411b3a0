package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"

	"github.com/fairwaylabs/launchpoint/internal/common/config"
	"github.com/fairwaylabs/launchpoint/internal/common/db"
	"github.com/fairwaylabs/launchpoint/internal/common/logger"
	devicerepo "github.com/fairwaylabs/launchpoint/internal/device/repository"
	userrepo "github.com/fairwaylabs/launchpoint/internal/user/repository"
)

// App holds everything main needs wired: config, logger and the backing
// stores. When DATABASE_URL is set the repositories run on Postgres,
// otherwise on the in-memory stores (Pool stays nil).
type App struct {
	Config     config.Config
	Log        *logger.Logger
	Pool       *pgxpool.Pool
	UserRepo   userrepo.Repository
	DeviceRepo devicerepo.Repository
}

func NewApp(ctx context.Context) (*App, error) {
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("LOG_DIR"), "api", os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app := &App{
		Config: cfg,
		Log:    log,
	}

	if cfg.DatabaseURL == "" {
		log.Info("no DATABASE_URL configured, using in-memory stores")
		app.UserRepo = userrepo.NewMemRepository()
		app.DeviceRepo = devicerepo.NewMemRepository()
		return app, nil
	}

	pool, err := db.NewPool(ctx, log, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	app.Pool = pool
	app.UserRepo = userrepo.NewPgRepository(pool)
	app.DeviceRepo = devicerepo.NewPgRepository(pool)
	return app, nil
}

func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}
