package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/solhub/admin-api/internal/auth"
	"github.com/solhub/admin-api/internal/crypto"
	"github.com/solhub/admin-api/internal/httpapi"
	"github.com/solhub/admin-api/internal/monitoring"
	"github.com/solhub/admin-api/internal/realtime"
	"github.com/solhub/admin-api/internal/service"
	"github.com/solhub/admin-api/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		port        = flag.Int("port", 8080, "Port for the console API")
		metricsPort = flag.Int("metrics-port", 8081, "Port for health checks and metrics")
		dbHost      = flag.String("db-host", "localhost", "Database host")
		dbPort      = flag.Int("db-port", 5432, "Database port")
		dbUser      = flag.String("db-user", "solhub_service", "Database user")
		dbPass      = flag.String("db-pass", "", "Database password")
		dbName      = flag.String("db-name", "solhub", "Database name")
		redisAddr   = flag.String("redis-addr", "localhost:6379", "Redis address")
		jwtSecret   = flag.String("jwt-secret", "", "JWT signing secret")
		webhookKey  = flag.String("webhook-key", "", "32-byte key protecting webhook URLs at rest")
		accessTTL   = flag.Duration("access-ttl", 15*time.Minute, "Access token lifetime")
		refreshTTL  = flag.Duration("refresh-ttl", 7*24*time.Hour, "Refresh token lifetime")
	)
	flag.Parse()

	if *jwtSecret == "" || *webhookKey == "" {
		log.Fatal().Msg("jwt-secret and webhook-key are required")
	}

	cipher, err := crypto.NewCipher([]byte(*webhookKey))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build webhook cipher")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		*dbHost, *dbPort, *dbUser, *dbPass, *dbName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.New(ctx, dsn, *redisAddr, cipher)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer st.Close()

	labRepo := store.NewLaboratoryRepository(st)
	featureRepo := store.NewFeatureRepository(st)
	moduleRepo := store.NewModuleRepository(st)
	codeRepo := store.NewCodeRepository(st)
	profileRepo := store.NewProfileRepository(st)

	tokens := auth.NewJWTService([]byte(*jwtSecret), *accessTTL, *refreshTTL)

	monitoring.InitMetrics()

	watcher, err := realtime.Start(ctx, labRepo, st, "")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start laboratory change feed watcher")
	}
	defer watcher.Stop()

	router := httpapi.NewRouter(httpapi.Deps{
		Laboratories: service.NewLaboratoryService(labRepo, featureRepo, moduleRepo),
		Features:     service.NewFeatureService(featureRepo),
		Modules:      service.NewModuleService(moduleRepo, featureRepo),
		Codes:        service.NewAccessCodeService(codeRepo, labRepo),
		Profiles:     service.NewProfileService(profileRepo),
		Auth:         service.NewAuthService(profileRepo, tokens),
		Tokens:       tokens,
		Watcher:      watcher,
	})

	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: router,
	}

	go func() {
		log.Info().Msgf("Starting Solhub console API on port %d", *port)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start API server")
		}
	}()

	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})
		mux.Handle("/metrics", promhttp.Handler())

		metricsServer := &http.Server{
			Addr:    fmt.Sprintf(":%d", *metricsPort),
			Handler: mux,
		}

		log.Info().Msgf("HTTP server for health checks and metrics started on port %d", *metricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down API server cleanly")
	}
	log.Info().Msg("Server exiting")
}
