/*
Webapi is the executable for the portfolio web server.

It serves the public marketing pages, a small JSON API mirroring the catalog
views, and a session authenticated admin area for managing artwork listings.
Everything lives in a single process over a single SQLite file; templates and
the database schema are embedded in the executable during the build.

Usage:

	webapi [flags]

Flags and environment variables are handled by the code in `load-configuration.go`.

Return values (exit codes):

	0
		The program ended successfully (no errors, stopped by signal)

	> 0
		The program ended due to an error
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ardanlabs/conf"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/mvanetti/atelier/pkg/artworks"
	"github.com/mvanetti/atelier/pkg/auth"
	"github.com/mvanetti/atelier/pkg/rest"
	"github.com/mvanetti/atelier/pkg/site"
	"github.com/mvanetti/atelier/pkg/storage/images"
	"github.com/mvanetti/atelier/pkg/storage/sqlite"
)

// main is the program entry point. The only purpose of this function is to call run()
// and set the exit code if there is any error.
func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error: ", err)
		os.Exit(1)
	}
}

// run executes the program:
// * reads the configuration
// * creates and configures the logger
// * connects to external resources (database, images directory)
// * registers page, API and admin handlers
// * starts the web server and waits for a termination event
func run() error {

	// Load configuration and defaults
	cfg, err := loadConfiguration()
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			return nil
		}
		return err
	}

	// Init logging
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	logger.Infof("application initializing")

	// initialise the database before registering handlers, for an immediate exit in case of issues
	storage, err := sqlite.New(logger, cfg.DB.Filename)
	if err != nil {
		logger.WithError(err).Error("error initialising storage")
		return fmt.Errorf("error while initialising storage: %w", err)
	}
	defer storage.Close()

	imageStore, err := images.New(logger, cfg.Uploads.Path, cfg.Uploads.MaxSize, strings.Fields(cfg.Uploads.AllowedTypes))
	if err != nil {
		logger.WithError(err).Error("error initialising images store")
		return fmt.Errorf("error while initialising images store: %w", err)
	}

	// repositories
	var artworksRepository = artworks.NewRepository(storage.Connection)
	var usersRepository = auth.NewRepository(storage.Connection)

	// the users table is the single source of truth for logins; the configured
	// credentials only seed it when empty
	if err = usersRepository.EnsureAdmin(cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Email); err != nil {
		logger.WithError(err).Error("error seeding admin user")
		return fmt.Errorf("error while seeding admin user: %w", err)
	}

	var sessions = auth.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL)

	renderer, err := site.NewRenderer(logger)
	if err != nil {
		logger.WithError(err).Error("error parsing templates")
		return fmt.Errorf("error while parsing templates: %w", err)
	}

	services, err := site.LoadServices(cfg.Site.ServicesFile)
	if err != nil {
		logger.WithError(err).Error("error loading services catalogue")
		return fmt.Errorf("error while loading services catalogue: %w", err)
	}

	logger.Info("initializing web server")

	e, err := rest.New(rest.Config{Logger: logger})
	if err != nil {
		logger.WithError(err).Error("error creating the server instance")
		return fmt.Errorf("creating the server instance: %w", err)
	}

	e.Use(rest.RequestLogger(logger))

	// setup handlers
	artworks.RegisterHandlers(e, artworksRepository)
	site.RegisterHandlers(e, site.Config{
		Renderer:       renderer,
		Logger:         logger,
		Artworks:       artworksRepository,
		Services:       services,
		DegradeOnError: cfg.Site.DegradeOnError,
	})
	site.RegisterAdminHandlers(e, site.AdminConfig{
		Renderer: renderer,
		Artworks: artworksRepository,
		Users:    usersRepository,
		Sessions: sessions,
		Images:   imageStore,
	})

	e.ServeFiles("/static/*filepath", http.Dir(cfg.Web.StaticDir))
	e.ServeFiles("/uploads/*filepath", http.Dir(cfg.Uploads.Path))

	// Apply CORS policy
	var handler = applyCORSHandler(e.Handler())

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	server := http.Server{
		Addr:              cfg.Web.APIHost,
		Handler:           handler,
		ReadTimeout:       cfg.Web.ReadTimeout,
		ReadHeaderTimeout: cfg.Web.ReadTimeout,
		WriteTimeout:      cfg.Web.WriteTimeout,
	}

	// Start the service listening for requests in a separate goroutine
	go func() {
		logger.Infof("listening on %s", server.Addr)
		serverErrors <- server.ListenAndServe()
		logger.Infof("stopping web server")
	}()

	// Waiting for shutdown signal or POSIX signals
	select {
	case err := <-serverErrors:
		// Non-recoverable server error
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Infof("signal %v received, start shutdown", sig)

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and load shed.
		if err = server.Shutdown(ctx); err != nil {
			logger.WithError(err).Warning("error during graceful shutdown of HTTP server")
			err = server.Close()
		}

		if err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
