package app

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/justinjurolan/blogsite/internal/config"
	"github.com/justinjurolan/blogsite/internal/db"
	"github.com/justinjurolan/blogsite/internal/repository"
	"github.com/justinjurolan/blogsite/internal/service"
	"github.com/justinjurolan/blogsite/internal/storage"
)

// App wires the database, repositories, and services together.
type App struct {
	Config *config.Config
	DB     *sqlx.DB

	UserRepo repository.UserRepository
	PostRepo repository.PostRepository

	FileService  *service.FileService
	EmailService *service.EmailService
	AuthService  *service.AuthService
	UserService  *service.UserService
	PostService  *service.PostService
}

func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	if err := db.RunMigrations(database.DB, cfg.DBDriver); err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	store, err := storage.New(cfg)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	userRepo := repository.NewUserRepository(database)
	postRepo := repository.NewPostRepository(database)

	fileService := service.NewFileService(store)
	emailService := service.NewEmailService(cfg)
	emailService.Start()

	a := &App{
		Config:       cfg,
		DB:           database,
		UserRepo:     userRepo,
		PostRepo:     postRepo,
		FileService:  fileService,
		EmailService: emailService,
		AuthService:  service.NewAuthService(userRepo, emailService, cfg),
		UserService:  service.NewUserService(userRepo, fileService),
		PostService:  service.NewPostService(postRepo, fileService, cfg.PageSize),
	}

	slog.Info("app initialized",
		"env", cfg.AppEnv,
		"db_driver", cfg.DBDriver,
		"storage", cfg.StorageDriver,
	)
	return a, nil
}

// Close stops background workers and releases the database.
func (a *App) Close() {
	a.EmailService.Close()
	if err := a.DB.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}
}
