package app

import (
	"database/sql"
	"fmt"
	"net/http"

	"dailyvocab/internal/config"
	"dailyvocab/internal/database"
	"dailyvocab/internal/generator"
	"dailyvocab/internal/httpapi"
	"dailyvocab/internal/repository/sqldb"
	"dailyvocab/internal/service"
	"dailyvocab/internal/speech"

	"go.uber.org/zap"
)

// App holds the storage connection and every service built on it
type App struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sql.DB

	Users    *service.UserService
	Words    *service.WordService
	Settings *service.SettingsService
	Practice *service.PracticeService
	Games    *service.GameService
	Warmup   *service.WarmupService
	Speech   *speech.Synthesizer
}

// New connects to the database, applies migrations and wires the services
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	// Connect to database with retries
	db, err := database.Open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	logger.Info("Database connection established", zap.String("driver", cfg.Database.Driver))

	// Run migrations
	if err := database.Migrate(db, cfg.Database.Driver, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// Initialize repositories
	dialect := database.Dialect(cfg)
	userRepo := sqldb.NewUserRepo(db, dialect)
	prefRepo := sqldb.NewPreferenceRepo(db, dialect)

	// Remote clients; both degrade gracefully without an API key
	client := generator.NewClient(cfg.OpenAI)
	if client == nil {
		logger.Warn("OPENAI_API_KEY is not set, using built-in word lists")
	}
	gen := generator.New(client, cfg.OpenAI.Model, logger)
	synth := speech.NewSynthesizer(client, cfg.OpenAI.TTSModel, cfg.OpenAI.TTSVoice, cfg.AudioCacheDir, logger)

	// Initialize services
	users := service.NewUserService(userRepo)
	settings := service.NewSettingsService(prefRepo, logger)
	words := service.NewWordService(prefRepo, settings, gen, cfg.Location(), logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Users:    users,
		Words:    words,
		Settings: settings,
		Practice: service.NewPracticeService(words, logger),
		Games:    service.NewGameService(prefRepo, logger),
		Warmup:   service.NewWarmupService(users, words, logger),
		Speech:   synth,
	}, nil
}

// APIHandler returns the HTTP API router
func (a *App) APIHandler() http.Handler {
	h := httpapi.NewHandler(a.Users, a.Words, a.Settings, a.Practice, a.Games, a.Logger)
	return httpapi.NewRouter(h, a.Logger)
}

// Close releases the database connection
func (a *App) Close() error {
	return a.DB.Close()
}
