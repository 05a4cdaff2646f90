package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NeuralTrust/ParamGuard/pkg/app/offender"
	"github.com/NeuralTrust/ParamGuard/pkg/config"
	handlers "github.com/NeuralTrust/ParamGuard/pkg/handlers/http"
	"github.com/NeuralTrust/ParamGuard/pkg/infra/auditlogs"
	"github.com/NeuralTrust/ParamGuard/pkg/infra/cache"
	"github.com/NeuralTrust/ParamGuard/pkg/infra/httpx"
	"github.com/NeuralTrust/ParamGuard/pkg/infra/jwt"
	infraLogger "github.com/NeuralTrust/ParamGuard/pkg/infra/logger"
	"github.com/NeuralTrust/ParamGuard/pkg/middleware"
	"github.com/NeuralTrust/ParamGuard/pkg/sanitizer"
	"github.com/NeuralTrust/ParamGuard/pkg/server"
	"github.com/NeuralTrust/ParamGuard/pkg/server/router"
	"github.com/NeuralTrust/ParamGuard/pkg/version"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const (
	serverTypeProxy = "proxy"
	serverTypeAdmin = "admin"
	commandToken    = "token"

	defaultTokenTTL = 24 * time.Hour
)

func main() {
	serverType := getServerType()
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config"
	}
	if err := config.Load(configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	if serverType == commandToken {
		if err := printToken(cfg); err != nil {
			log.Fatalf("failed to create token: %v", err)
		}
		return
	}

	logger, closeLogs := infraLogger.NewLogger(serverType)
	defer closeLogs()

	var (
		offenders = offender.NewNoopTracker()
		audit     = auditlogs.NewNoopService()
	)
	if cfg.Redis.Enabled {
		cacheClient, err := cache.NewClient(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TLS:      cfg.Redis.TLS,
		}, logger)
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize redis")
		}
		defer func() {
			if err := cacheClient.Close(); err != nil {
				logger.WithError(err).Warn("failed to close redis client")
			}
		}()

		if cfg.Offenders.Enabled {
			offenders = offender.NewTracker(cacheClient, logger, cfg.Offenders.Window, cfg.Offenders.BanThreshold)
		}
		if cfg.Audit.Enabled {
			breaker := httpx.NewCircuitBreaker("audit-publisher", cfg.Audit.BreakerTimeout, cfg.Audit.MaxFailures, logger)
			audit = auditlogs.NewService(
				cache.NewRedisEventPublisher(cacheClient),
				breaker,
				cache.Channel(cfg.Audit.Channel),
				logger,
				true,
			)
		}
	}

	s := sanitizer.New(cfg.Guard.StatusCode)
	jwtManager := jwt.NewJwtManager(&cfg.Server)

	middlewareTransport := &middleware.Transport{
		PanicRecoverMiddleware:   middleware.NewPanicRecoverMiddleware(logger),
		RequestIDMiddleware:      middleware.NewRequestIDMiddleware(),
		MetricsMiddleware:        middleware.NewMetricsMiddleware(logger),
		InjectionGuardMiddleware: middleware.NewInjectionGuardMiddleware(logger, cfg.Guard, s, offenders, audit),
		AdminAuthMiddleware:      middleware.NewAdminAuthMiddleware(logger, jwtManager),
	}
	if !cfg.Metrics.Enabled {
		middlewareTransport.MetricsMiddleware = nil
	}

	upstreamClient := httpx.NewUpstreamClient(
		httpx.WithTimeout(cfg.Upstream.Timeout),
		httpx.WithName(version.AppName+"/"+version.Version),
	)

	handlerTransport := handlers.HandlerTransport{
		// Proxy
		ForwardedHandler: handlers.NewForwardedHandler(logger, cfg.Upstream.URL, upstreamClient),
		MirrorHandler:    handlers.NewMirrorHandler(),
		// Admin
		InspectHandler:        handlers.NewInspectHandler(logger, s),
		GetOffenderHandler:    handlers.NewGetOffenderHandler(logger, offenders),
		DeleteOffenderHandler: handlers.NewDeleteOffenderHandler(logger, offenders),
		GetVersionHandler:     handlers.NewGetVersionHandler(logger),
	}

	srv := initializeServer(
		serverType,
		server.ProxyServerDI{
			Config:  cfg,
			Logger:  logger,
			Routers: []router.ServerRouter{router.NewProxyRouter(middlewareTransport, handlerTransport)},
		},
		server.AdminServerDI{
			Config:  cfg,
			Logger:  logger,
			Routers: []router.ServerRouter{router.NewAdminRouter(middlewareTransport, handlerTransport)},
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Run)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")
		return srv.Shutdown()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("server stopped with error")
		return
	}
	logger.Info("server gracefully stopped")
}

func getServerType() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return serverTypeProxy
}

func initializeServer(
	serverType string,
	proxyServerDI server.ProxyServerDI,
	adminServerDI server.AdminServerDI,
) server.Server {
	switch serverType {
	case serverTypeAdmin:
		return server.NewAdminServer(adminServerDI)
	default:
		return server.NewProxyServer(proxyServerDI)
	}
}

// printToken writes a signed admin token for the subject given as the
// second argument, valid for TOKEN_TTL (default 24h).
func printToken(cfg *config.Config) error {
	subject := "admin"
	if len(os.Args) > 2 {
		subject = os.Args[2]
	}
	ttl := defaultTokenTTL
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		ttl = parsed
	}
	token, err := jwt.NewJwtManager(&cfg.Server).CreateToken(subject, ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
