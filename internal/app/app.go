// Package app runs one Garmin-to-Obsidian sync: authenticate, fetch the
// target day, render it and append it to the daily note.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/garmin2obsidian/internal/buildinfo"
	"github.com/dmitrijs2005/garmin2obsidian/internal/common"
	"github.com/dmitrijs2005/garmin2obsidian/internal/config"
	"github.com/dmitrijs2005/garmin2obsidian/internal/garmin"
	"github.com/dmitrijs2005/garmin2obsidian/internal/logging"
	"github.com/dmitrijs2005/garmin2obsidian/internal/markdown"
	"github.com/dmitrijs2005/garmin2obsidian/internal/metrics"
	"github.com/dmitrijs2005/garmin2obsidian/internal/models"
	"github.com/dmitrijs2005/garmin2obsidian/internal/services"
	"github.com/dmitrijs2005/garmin2obsidian/internal/timex"
	"github.com/dmitrijs2005/garmin2obsidian/internal/tracing"
	"github.com/dmitrijs2005/garmin2obsidian/internal/vault"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// Pipeline stage names used for spans and the stage duration gauge.
const (
	StageAuth   = "authenticate"
	StageFetch  = "fetch"
	StageFormat = "format"
	StageAppend = "append"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	authService services.AuthService
	dataService services.FetchService
	notes       vault.Appender
	metrics     *metrics.Recorder
	now         func() time.Time
}

// NewApp wires the production pipeline for c.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	apiClient, err := garmin.NewHTTPClient(garmin.Options{
		SSOURL:      c.SSOURL,
		APIURL:      c.APIURL,
		Timeout:     c.HTTPTimeout,
		UserAgent:   common.AppName + "/" + buildinfo.Version(),
		Consumer:    garmin.Consumer{Key: c.ConsumerKey, Secret: c.ConsumerSecret},
		ConsumerURL: c.ConsumerURL,
	})
	if err != nil {
		return nil, fmt.Errorf("garmin client init error: %w", err)
	}

	as := services.NewAuthService(apiClient, logger)
	fs := services.NewFetchService(apiClient, logger)
	notes := vault.NewFileAppender(c.VaultPath, c.NoteLayout, logger)

	return New(c, logger, as, fs, notes), nil
}

// New assembles an App from already constructed services.
func New(c *config.Config, logger logging.Logger, as services.AuthService, fs services.FetchService, notes vault.Appender) *App {
	return &App{
		config:      c,
		logger:      logger,
		authService: as,
		dataService: fs,
		notes:       notes,
		metrics:     metrics.New(),
		now:         time.Now,
	}
}

// Metrics returns the recorder filled in by Run.
func (a *App) Metrics() *metrics.Recorder {
	return a.metrics
}

// Run performs the sync once. The returned error wraps one of the
// common sentinels; the note is touched only after every earlier stage
// succeeded.
func (a *App) Run(ctx context.Context) error {
	runID := uuid.NewString()
	logger := a.logger.With("run_id", runID)
	date := a.config.TargetDate(a.now())

	ctx, span := tracing.Start(ctx, "sync",
		attribute.String("run_id", runID),
		attribute.String("date", date.Format(timex.DateLayout)),
	)

	logger.Info(ctx, "starting sync", "date", date.Format(timex.DateLayout), "version", buildinfo.Version())

	err := a.sync(ctx, logger, date)
	if cerr := a.authService.Close(ctx); cerr != nil {
		logger.Warn(ctx, "closing garmin client", "error", cerr)
	}

	tracing.End(span, err)
	a.metrics.RecordRun(a.now(), err)
	a.writeMetrics(ctx, logger)

	if err != nil {
		logger.Error(ctx, "sync failed", "error", err)
		return err
	}
	logger.Info(ctx, "sync finished")
	return nil
}

func (a *App) sync(ctx context.Context, logger logging.Logger, date time.Time) error {
	var session *garmin.Session
	err := a.stage(ctx, StageAuth, func(ctx context.Context) error {
		defer common.WipeByteArray(a.config.Password)

		var err error
		session, err = a.authService.Authenticate(ctx, a.config.Email, a.config.Password)
		return err
	})
	if err != nil {
		return err
	}

	var records *models.DayRecords
	err = a.stage(ctx, StageFetch, func(ctx context.Context) error {
		var err error
		records, err = a.dataService.FetchDay(ctx, session, date)
		return err
	})
	if err != nil {
		return err
	}

	var entry models.NoteEntry
	err = a.stage(ctx, StageFormat, func(ctx context.Context) error {
		entry = a.notes.Entry(date, markdown.FormatDay(*records))
		return nil
	})
	if err != nil {
		return err
	}

	return a.stage(ctx, StageAppend, func(ctx context.Context) error {
		n, err := a.notes.Append(ctx, entry)
		if err != nil {
			return err
		}
		a.metrics.RecordAppend(len(records.Workouts), n)
		logger.Info(ctx, "note updated", "path", entry.Path, "workouts", len(records.Workouts), "bytes", n)
		return nil
	})
}

// stage runs fn inside a span and records its duration.
func (a *App) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	start := time.Now()
	ctx, span := tracing.Start(ctx, name)

	err := fn(ctx)

	tracing.End(span, err)
	a.metrics.ObserveStage(name, time.Since(start))
	return err
}

func (a *App) writeMetrics(ctx context.Context, logger logging.Logger) {
	if a.config.MetricsTextfile == "" {
		return
	}
	if err := a.metrics.WriteTextfile(a.config.MetricsTextfile); err != nil {
		logger.Warn(ctx, "metrics textfile not written", "error", err)
	}
}
