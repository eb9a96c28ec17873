package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/joselazo21/todo-list/config"
	"github.com/joselazo21/todo-list/db"
	authhandler "github.com/joselazo21/todo-list/internal/auth/handler"
	"github.com/joselazo21/todo-list/internal/auth/ratelimit"
	authrepo "github.com/joselazo21/todo-list/internal/auth/repository/postgres"
	authservice "github.com/joselazo21/todo-list/internal/auth/service"
	taskhandler "github.com/joselazo21/todo-list/internal/tasks/handler"
	taskrepo "github.com/joselazo21/todo-list/internal/tasks/repository/postgres"
	taskservice "github.com/joselazo21/todo-list/internal/tasks/service"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg := config.Load()
	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.WithError(err).Fatal("postgres connection failed")
	}
	defer dbPool.Close()

	redisPool := db.NewRedisPool(cfg.RedisURL)
	defer redisPool.Close()

	limiter := ratelimit.NewRedisLimiter(redisPool)

	tokenService := authservice.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin, cfg.VerifyExpiryMin)
	userService := authservice.NewUserService(authrepo.NewPostgresRepository(dbPool), tokenService, cfg)
	authHandler := authhandler.NewAuthHandler(userService, tokenService)

	taskService := taskservice.NewTaskService(taskrepo.NewPostgresRepository(dbPool))
	taskHandler := taskhandler.NewTaskHandler(taskService)

	app := fiber.New()
	authhandler.RegisterRoutes(app, authHandler, limiter, cfg)
	taskhandler.RegisterRoutes(app, taskHandler, authHandler)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("shutdown failed")
		}
	}()

	log.WithField("port", cfg.Port).Info("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
