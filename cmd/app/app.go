package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"venuedesk/internal/config"
	"venuedesk/internal/db"
	"venuedesk/internal/intent"
	"venuedesk/internal/logger"
	"venuedesk/internal/repository"
	"venuedesk/internal/repository/dao"
	"venuedesk/internal/service"
)

// App bundles everything the UI shell calls into.
type App struct {
	Events    *repository.EventRepository
	Templates *repository.TemplateRepository
	Catalog   *repository.ReferenceCatalog
	Settings  *repository.SettingsRepository
	Bookings  *repository.BookingRepository
	Help      *repository.HelpRepository

	EventService *service.EventService
	Instantiator *service.TemplateInstantiator
	Analysis     *service.AnalysisEngine
	Scheduling   *service.SchedulingModel
	Backup       *service.BackupService

	Intents *intent.Dispatcher
}

// New wires the store, repositories and services from the loaded config.
func New(conf *config.AppConfig) (*App, error) {
	gormDB, err := db.Open(conf.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	eventDAO := dao.NewEventDAO(gormDB)
	templateDAO := dao.NewTemplateDAO(gormDB)
	referenceDAO := dao.NewReferenceDAO(gormDB)
	settingsDAO := dao.NewSettingsDAO(gormDB)
	bookingDAO := dao.NewBookingDAO(gormDB)
	helpDAO := dao.NewHelpDAO(gormDB)

	a := &App{
		Events:    repository.NewEventRepository(eventDAO),
		Templates: repository.NewTemplateRepository(templateDAO),
		Catalog:   repository.NewReferenceCatalog(referenceDAO),
		Settings:  repository.NewSettingsRepository(settingsDAO),
		Bookings:  repository.NewBookingRepository(bookingDAO),
		Help:      repository.NewHelpRepository(helpDAO),
		Intents:   intent.NewDispatcher(),
	}

	a.EventService = service.NewEventService(a.Events, a.Settings, a.Bookings)
	a.Instantiator = service.NewTemplateInstantiator(a.Templates, a.Events)
	a.Analysis = service.NewAnalysisEngine(a.Events)
	a.Scheduling = service.NewSchedulingModel(a.Events, a.Bookings, a.Settings)
	a.Backup = service.NewBackupService(conf.Database.Path, conf.Backup)

	a.Intents.Register(intent.ManualBackup, func(ctx context.Context) error {
		name := "events_backup_" + time.Now().Format("20060102_150405") + ".db"
		return a.Backup.ManualBackup(filepath.Join(conf.Backup.Dir, name))
	})

	return a, nil
}

// Start wires the application, takes the daily backup, and keeps the nightly
// backup job running until the process is signalled.
func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	a, err := New(conf)
	if err != nil {
		return err
	}

	if err = a.Backup.RunDaily(); err != nil {
		zap.L().Warn("startup backup failed", zap.Error(err))
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to initialize scheduler -> %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 5, 0))),
		gocron.NewTask(func() {
			if err := a.Backup.RunDaily(); err != nil {
				zap.L().Warn("nightly backup failed", zap.Error(err))
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule nightly backup -> %w", err)
	}

	scheduler.Start()
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			zap.L().Warn("scheduler shutdown failed", zap.Error(err))
		}
	}()

	zap.L().Info("venuedesk ready",
		zap.String("database", conf.Database.Path),
		zap.String("backups", conf.Backup.Dir),
		zap.String("last_backup", a.Backup.LastBackupDescription()),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down")

	return nil
}
