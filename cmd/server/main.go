package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"invoice-dashboard-backend/internal/config"
	"invoice-dashboard-backend/internal/migrations"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/routes"
	"invoice-dashboard-backend/internal/services/auth"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	app := &cli.App{
		Name:  "invoice-dashboard",
		Usage: "invoice dashboard backend",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP server",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "skip-migrate", Usage: "do not apply migrations on start"},
				},
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations and exit",
				Action: migrate,
			},
			{
				Name:  "create-user",
				Usage: "create a dashboard user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: createUser,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

func setup() (config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, errors.Wrap(err, "parse log level")
	}
	log.SetLevel(level)

	db, err := config.InitDB(cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, db, nil
}

func applyMigrations(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql handle")
	}
	return migrations.Up(sqlDB)
}

func migrate(_ *cli.Context) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	if err := applyMigrations(db); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

func serve(c *cli.Context) error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}
	if !c.Bool("skip-migrate") {
		if err := applyMigrations(db); err != nil {
			return err
		}
	}

	logger := log.StandardLogger()
	if logger.GetLevel() < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, cfg, routes.NewDependencies(db, cfg, logger))

	srv := &http.Server{Addr: cfg.ServeAddress, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()
	log.WithField("address", cfg.ServeAddress).Info("Starting server")

	waitForKillSignal(getKillSignalChan())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func createUser(c *cli.Context) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	hashed, err := auth.HashPassword(c.String("password"))
	if err != nil {
		return err
	}
	user := &models.User{
		Name:     c.String("name"),
		Email:    c.String("email"),
		Password: hashed,
	}
	if err := repository.NewUserRepository(db).Create(c.Context, user); err != nil {
		return err
	}
	log.WithFields(log.Fields{"id": user.ID, "email": user.Email}).Info("created user")
	return nil
}

func getKillSignalChan() chan os.Signal {
	osKillSignalChan := make(chan os.Signal, 1)
	signal.Notify(osKillSignalChan, os.Interrupt, syscall.SIGTERM)
	return osKillSignalChan
}

func waitForKillSignal(killSignalChan <-chan os.Signal) {
	killSignal := <-killSignalChan
	switch killSignal {
	case os.Interrupt:
		log.Info("Got SIGINT...")
	case syscall.SIGTERM:
		log.Info("Got SIGTERM...")
	}
}
