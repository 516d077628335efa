package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/wingedflyer/portal/internal/config"
	"github.com/wingedflyer/portal/internal/infra/database"
	"github.com/wingedflyer/portal/internal/infra/repository"
	"github.com/wingedflyer/portal/internal/infra/telemetry"
	"github.com/wingedflyer/portal/internal/present/rest"
	authmw "github.com/wingedflyer/portal/internal/present/rest/middleware"
	"github.com/wingedflyer/portal/internal/service"
	"github.com/wingedflyer/portal/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.MigratePostgres(db); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, "", conf.Server.RedisDB)
	mc := database.NewMemcached(conf.Server.MemcachedAddr)

	ctx := context.Background()
	shutdownTracer, err := telemetry.Setup(ctx, "portal", traceEndpoint(conf))
	if err != nil {
		slog.Error("failed to set up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			slog.Error("failed to shut down tracer", slog.String("error", err.Error()))
		}
	}()

	participantRepo := repository.NewParticipantRepository(db)
	institutionRepo := repository.NewInstitutionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	commRepo := repository.NewCommunicationRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	signalRepo := repository.NewSignalRepository(db)
	instructionRepo := repository.NewInstructionRepository(db)
	flyerRepo := repository.NewFlyerRepository(db)
	languageRepo := repository.NewLanguageRepository(db)

	sessionTTL := time.Duration(conf.Server.SessionTTLHours) * time.Hour
	authService := service.NewAuthService(rdb, participantRepo, institutionRepo, sessionTTL)
	eventService := service.NewEventService(rdb)
	labelService := service.NewLabelService(languageRepo)
	renderService := service.NewRenderService(mc)
	qrService := service.NewQRService(conf.Site.BaseURL)

	participantUC := usecase.NewParticipantUsecase(
		participantRepo, activityRepo, signalRepo, instructionRepo, commRepo, eventService)
	institutionUC := usecase.NewInstitutionUsecase(
		institutionRepo, participantRepo, signalRepo, instructionRepo, paymentRepo, commRepo)
	activityUC := usecase.NewActivityUsecase(activityRepo)
	signalUC := usecase.NewSignalUsecase(signalRepo, activityRepo, participantRepo, eventService)
	instructionUC := usecase.NewInstructionUsecase(instructionRepo, participantRepo)
	flyerUC := usecase.NewFlyerUsecase(flyerRepo, participantRepo)
	statusUC := usecase.NewStatusUsecase(participantRepo, paymentRepo, commRepo)

	handler := rest.NewHandler(
		authService, eventService, labelService, renderService, qrService,
		participantUC, institutionUC, activityUC, signalUC, instructionUC, flyerUC, statusUC)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("portal"))
	}

	handler.RegisterRoutes(e, authmw.NewAuthMiddleware(authService))

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func traceEndpoint(conf config.Config) string {
	if !conf.Server.EnableTrace {
		return ""
	}
	return conf.Server.TraceEndpoint
}
