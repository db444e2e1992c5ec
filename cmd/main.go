package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tempwatch/internal/config"
	"tempwatch/internal/handlers"
	"tempwatch/internal/logger"
	"tempwatch/internal/monitor"
	"tempwatch/internal/repository"
	"tempwatch/internal/server"
	"tempwatch/internal/service"
	"tempwatch/internal/source"

	"github.com/spf13/viper"
)

// @title           tempwatch API
// @version         1.0
// @description     Host temperature monitoring: status, history, alerts and a status-bar token.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Config before logger so the log level comes from the file. Defaults are
	// registered inside Load, so the level resolves even when the read fails.
	cfgErr := config.Load()
	log := logger.Get(viper.GetString(config.KeyLogLevel))
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	store := config.NewStore(log)
	store.Watch()

	// open DB
	db, err := repository.InitDB(viper.GetString(config.KeyDBPath))
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer closeDB(db, log)

	repos := repository.NewRepository(db)

	src, err := source.New(store.Source())
	if err != nil {
		log.Fatalw("failed to build temperature source", "err", err)
	}

	// wire dependencies
	mon := monitor.New(store, src, service.NewAlertRecorder(repos.Alerts), log)
	services := service.NewService(repos, mon, store.Auth())
	apiHandler := handlers.NewHandler(services, log)

	// start background polling
	mon.Start()

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString(config.KeyPort), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, mon, log)
}

func closeDB(db *sql.DB, log *logger.Logger) {
	if err := db.Close(); err != nil {
		log.Errorw("failed to close sqlite", "err", err)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		err := srv.Run(port, handler.InitRoutes())
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals, stops the poller and
// performs graceful HTTP shutdown.
func waitForShutdown(srv *server.Server, mon *monitor.Monitor, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down...")

	if !mon.Stop() {
		log.Errorw("monitor did not stop in time")
	}

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
