package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skytrip/cfg"
	"skytrip/internal/flight"
	"skytrip/pkg/cache"
	"skytrip/pkg/idgen"
	"skytrip/pkg/logger"
	"skytrip/pkg/skyscrapper"

	_ "skytrip/cmd/skytrip/docs" // swagger docs

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// @title           Skytrip Flight Search API
// @version         1.0
// @description     Backend for the flight search screen: airport autocomplete, date picker, search and results.
// @BasePath        /
// @schemes         http
func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// Otel
	// ============
	if config.Observability.Enabled {
		shutdownOtel, err := initOtel(context.Background(), &config.Observability, zlogger)
		if err != nil {
			zlogger.Warn("Continuing without tracing/metrics", logger.Field{Key: "err", Value: err})
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdownOtel(ctx); err != nil {
					zlogger.Error("failed to shutdown OpenTelemetry", logger.Field{Key: "err", Value: err})
				}
			}()
		}
	}

	// ============
	// Cache
	// ============
	redis := cache.NewRedisCache(cache.RedisOptions{
		Addr:     config.Redis.Host + ":" + config.Redis.Port,
		Password: config.Redis.Password,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cache.Ping(pingCtx, redis); err != nil {
		zlogger.Warn("Redis unreachable, searches will not be cached", logger.Field{Key: "err", Value: err})
	}
	cancelPing()

	// ============
	// ID generator
	// ============
	ids, err := idgen.NewSnowflakeGenerator(config.SnowflakeNodeID)
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// External Service
	// ============
	httpClient := &http.Client{
		Timeout: time.Duration(config.SkyScrapper.ClientTimeoutSeconds) * time.Second,
	}
	skyClient := skyscrapper.NewClient(httpClient, skyscrapper.Config{
		BaseURL:           config.SkyScrapper.BaseURL,
		APIKey:            config.SkyScrapper.APIKey,
		APIHost:           config.SkyScrapper.APIHost,
		RequestsPerSecond: config.SkyScrapper.RequestsPerSecond,
		Burst:             config.SkyScrapper.Burst,
	}, zlogger)

	// ============
	// Internal Service
	// ============
	flightSvc := flight.NewService(skyClient, redis, ids, config.CacheTTLMinutes, zlogger)
	defer flightSvc.Close()
	flightHandler := flight.NewFlightHandler(flightSvc)

	// ============
	// HTTP
	// ============
	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(otelgin.Middleware(config.Observability.ServiceName))
	r.Use(TraceLoggerMiddleware(zlogger))

	flightHandler.RegisterRoutes(r)
	initSwagger(r)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: config.CORSAllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.AppPort),
		Handler:           corsHandler.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlogger.Info("HTTP server listening", logger.Field{Key: "addr", Value: srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlogger.Info("Shutting down HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlogger.Error("HTTP server shutdown failed", logger.Field{Key: "err", Value: err})
	}
}

func initSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		html := `<!DOCTYPE html>
<html>
<head>
    <title>Skytrip API Documentation</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
    <script id="api-reference" data-url="/swagger/doc.json"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`
		c.String(200, html)
	})
}
