package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"syscall"
	"time"

	"github.com/andy/countdown/internal/alert"
	"github.com/andy/countdown/internal/config"
	"github.com/andy/countdown/internal/crypto"
	"github.com/andy/countdown/internal/db"
	"github.com/andy/countdown/internal/domain"
	"github.com/andy/countdown/internal/logging"
	"github.com/andy/countdown/internal/metrics"
	"github.com/andy/countdown/internal/repository"
	"github.com/andy/countdown/internal/service"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config  *config.Config
	DB      *db.DB
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	// Repositories
	HistoryRepo repository.HistoryRepository

	// Services
	CountdownService service.CountdownService
	ReportService    service.ReportService

	logCloser io.Closer
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Opening the log file
// 3. Getting the history encryption key from the keyring
// 4. Opening the history database and running migrations
// 5. Creating the countdown service
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger, logCloser, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	keyring := crypto.NewKeyring()

	password, err := keyring.GetKey()
	if err != nil {
		// No key exists, prompt user to set one
		fmt.Println("Setting up countdown history encryption for the first time...")
		password, err = promptForPassword()
		if err != nil {
			logCloser.Close()
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		if err := keyring.SetKey(password); err != nil {
			logCloser.Close()
			return nil, fmt.Errorf("failed to store encryption key: %w", err)
		}
	}

	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		logCloser.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	historyRepo := repository.NewHistoryRepo(database)
	m := metrics.New()

	var notifier service.Notifier = alert.Silent{}
	if cfg.Alert.Sound {
		notifier = alert.NewChime(cfg.Alert, logger)
	}

	countdownService := service.NewCountdownService(
		domain.SystemClock,
		cfg.DefaultMode(),
		historyRepo,
		m,
		notifier,
		logger,
	)

	logger.Debug("app initialised", "database", cfg.Database.Path, "mode", cfg.DefaultMode())

	return &App{
		Config:           cfg,
		DB:               database,
		Logger:           logger,
		Metrics:          m,
		HistoryRepo:      historyRepo,
		CountdownService: countdownService,
		ReportService:    service.NewReportService(historyRepo),
		logCloser:        logCloser,
	}, nil
}

// Close cleanly shuts down the application. An active countdown is logged
// as stopped since it does not survive the process.
func (a *App) Close() error {
	if a.CountdownService != nil {
		switch a.CountdownService.Snapshot().Phase {
		case domain.PhaseRunning, domain.PhasePaused:
			a.CountdownService.Stop(context.Background())
		}
	}

	var err error
	if a.DB != nil {
		err = a.DB.Close()
	}
	if a.logCloser != nil {
		if cerr := a.logCloser.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// DefaultFields returns the form defaults as of now
func (a *App) DefaultFields() domain.Fields {
	return a.Config.DefaultFields(time.Now())
}

// promptForPassword prompts user for a new database password (first run)
// This should be called when keyring has no stored key
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your countdown history will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for history encryption: ")

	// Read password securely (no echo)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ History encryption configured successfully")
	fmt.Println()

	return string(password), nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
