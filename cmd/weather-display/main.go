package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"weather-display/config"
	"weather-display/internal/admin"
	v1 "weather-display/internal/controllers/http/v1"
	"weather-display/internal/models"
	"weather-display/internal/observability"
	"weather-display/internal/repositories"
	"weather-display/internal/scheduler"
	"weather-display/internal/services/weather"
	"weather-display/internal/settings"
	"weather-display/internal/store"
	"weather-display/pkg/httpserver"
	"weather-display/pkg/observe"
)

// @title Weather Display API
// @version 1.0.0
// @description Current conditions and a 7-day forecast from Open-Meteo, normalized for display,
// @description plus outage schedules, onboarding tour geometry and a mock admin console.

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Forecast and city search
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	var hooks []io.Writer
	var sentryHook *observe.SentryHook
	if cnf.Sentry.DSN != "" {
		sentryHook = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.Sentry.Debug, cnf.Sentry.DSN)
		hooks = append(hooks, sentryHook)
	}

	l := observe.NewZapLoggerWithOptions(cnf.App.Name, observe.Options{
		AppEnv: cnf.App.Env,
		Level:  cnf.Log.Level,
		Format: cnf.Log.Format,
		Hooks:  hooks,
	}, os.Stdout)
	if sentryHook != nil {
		sentryHook.SetLogger(l)
	}

	metrics := observability.NewMetrics()

	flagStore, closeStore, err := newSettingsStore(ctx, cnf)
	if err != nil {
		l.Fatal("cannot open settings store", map[string]any{"backend": cnf.Settings.Backend, "err": err.Error()})
	}
	flags := settings.NewFlags(flagStore)

	defaultCity := models.City{Name: cnf.Weather.DefaultCity, Lat: cnf.Weather.DefaultLat, Lon: cnf.Weather.DefaultLon}
	board := store.NewBoard(store.Entry{Location: defaultCity, Report: weather.Loading(defaultCity.Name)})

	repos := repositories.InitRepositories(cnf, l, metrics)
	service := weather.NewWeatherService(repos, board, l, weather.WithMetrics(metrics))

	publisher := newPublisher(cnf, l)
	console := admin.NewConsole(admin.NewDirectory(), publisher, flags, l, admin.WithMetrics(metrics))

	app := httpserver.InitFiberServer(cnf.App.Name, httpserver.Timeouts{
		Read:  cnf.Server.ReadTimeout,
		Write: cnf.Server.WriteTimeout,
		Idle:  cnf.Server.IdleTimeout,
	})

	v1.NewRouter(app, v1.Deps{
		Weather:  service,
		Flags:    flags,
		Console:  console,
		FrameURL: cnf.Light.FrameURL,
	}, l)

	refresher := scheduler.New(service, defaultCity, time.Duration(cnf.Weather.RefreshInterval)*time.Minute, l)
	if err := refresher.Start(); err != nil {
		l.Fatal("cannot start board refresh", map[string]any{"err": err.Error()})
	}

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":     cnf.Server.Port,
		"env":      cnf.App.Env,
		"settings": cnf.Settings.Backend,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		refresher.Stop()
		_ = app.ShutdownWithContext(shutdownCtx)
		if err := publisher.Close(); err != nil {
			l.Error(err)
		}
		closeStore()
		if sentryHook != nil {
			sentryHook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}

func newSettingsStore(ctx context.Context, cnf *config.Config) (settings.Store, func(), error) {
	switch cnf.Settings.Backend {
	case "postgres":
		s, err := settings.NewPostgresStore(ctx, cnf.Settings.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "file":
		s, err := settings.NewFileStore(cnf.Settings.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	default:
		return settings.NewMemoryStore(), func() {}, nil
	}
}

func newPublisher(cnf *config.Config, l *observe.Logger) admin.Publisher {
	if len(cnf.Admin.KafkaBrokers) == 0 {
		return admin.NewLogPublisher(l)
	}
	return admin.NewKafkaPublisher(cnf.Admin.KafkaBrokers, cnf.Admin.KafkaTopic, l)
}
