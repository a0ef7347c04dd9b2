package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"postboard/internal/cache"
	"postboard/internal/config"
	"postboard/internal/db"
	"postboard/internal/handler"
	"postboard/internal/observability"
	"postboard/internal/queue"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, relying on environment")
	}

	config := config.Load()
	database := db.Init(&config.DB)

	defer func() {
		if err := database.Close(); err != nil {
			logrus.WithError(err).Fatal("Failed to close database connection")
		}
	}()

	if err := db.EnsureSchema(database); err != nil {
		logrus.WithError(err).Fatal("Failed to ensure database schema")
	}

	rdb := cache.SetupRedis(&config.Redis)
	defer func() {
		if err := rdb.Close(); err != nil {
			logrus.WithError(err).Fatal("Failed to close redis connection")
		}
	}()

	conn := queue.SetupRabbitMQ(&config.RabbitMQ)
	defer func() {
		if err := conn.Close(); err != nil {
			logrus.WithError(err).Fatal("Failed to close RabbitMQ connection")
		}
	}()

	observability.InitMetrics()
	logrus.Info("Metrics initialized")

	r := handler.SetupHandler(database, conn, rdb, config)

	// Expose /metrics for Prometheus to scrape
	r.GET("/metrics", func(c *gin.Context) {
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})

	srv := &http.Server{
		Addr:    ":" + config.AppPort,
		Handler: r,
	}

	go func() {
		logrus.Info("Starting server on :", config.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")
}
