package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/lmalottucsd/bikewatching/internal/app"
	"github.com/lmalottucsd/bikewatching/internal/config"
	"github.com/lmalottucsd/bikewatching/internal/models"
	"github.com/lmalottucsd/bikewatching/internal/report"
)

const version = "1.0.0"

// Retries used when fetching a remote dataset-source config.
const configMaxRetries = 3

// Upper bound on the whole startup load: three sequential dataset
// fetches, the largest of which is the trip CSV.
const bootstrapTimeout = 5 * time.Minute

func main() {
	var (
		port = flag.Int("port", 4000, "API server port")
		env  = flag.String("env", "development", "Environment (development|staging|production)")

		configFile = flag.String("config-file", "", "Path to a local JSON file naming the dataset URLs")
		configURL  = flag.String("config-url", "", "URL of a remote JSON file naming the dataset URLs")
	)
	flag.Parse()

	configAuthUser := os.Getenv("CONFIG_AUTH_USER")
	configAuthPass := os.Getenv("CONFIG_AUTH_PASS")

	if err := config.ValidateConfigFlags(configFile, configURL); err != nil {
		fmt.Println("Error:", err)
		flag.Usage()
		os.Exit(1)
	}

	report.SetupSentry()
	defer report.FlushSentry()
	report.ConfigureScope(*env, version)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	client := app.NewPooledClient()

	var (
		sources models.DataSources
		err     error
	)

	switch {
	case *configFile != "":
		sources, err = config.LoadSourcesFromFile(*configFile)
	case *configURL != "":
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		sources, err = config.LoadSourcesFromURL(ctx, client, *configURL, configAuthUser, configAuthPass, configMaxRetries)
		cancel()
	default:
		sources = config.DefaultSources()
	}

	if err != nil {
		logger.Error("failed to load dataset configuration", "error", err)
		report.FlushSentry()
		os.Exit(1)
	}

	cfg := config.NewConfig(*port, *env, sources)
	application := app.New(cfg, logger, client, version)

	// Everything waits on the two dataset fetches; a failure here aborts
	// the whole setup with nothing drawn, there is no degraded mode.
	bootCtx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	err = application.Bootstrap(bootCtx)
	cancel()
	if err != nil {
		logger.Error("failed to load datasets", "error", err)
		report.ReportError(err, sentry.LevelFatal)
		report.FlushSentry()
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err = srv.ListenAndServe()
	report.ReportError(err, sentry.LevelFatal)
	report.FlushSentry()
	logger.Error(err.Error())
	os.Exit(1)
}
