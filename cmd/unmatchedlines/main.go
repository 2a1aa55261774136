package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/sahzadahmad246/unmatchedlines/internal/config"
	"github.com/sahzadahmad246/unmatchedlines/internal/infrastructure/providers"
	"github.com/sahzadahmad246/unmatchedlines/internal/infrastructure/repository"
	"github.com/sahzadahmad246/unmatchedlines/internal/present/rest"
	"github.com/sahzadahmad246/unmatchedlines/internal/present/rest/middleware"
	"github.com/sahzadahmad246/unmatchedlines/internal/service"
	"github.com/sahzadahmad246/unmatchedlines/internal/slug"
	"github.com/sahzadahmad246/unmatchedlines/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config",
			slog.String("path", *configPath),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	if conf.Server.EnableTrace {
		cleanup, err := setupTraceProvider(conf)
		if err != nil {
			slog.Error("failed to set up tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer cleanup()
	}

	db, err := providers.NewDatabase(conf.Server)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := providers.MigrateDatabase(db); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := providers.NewRedis(conf.Server)
	mc := providers.NewMemcache(conf.Server.MemcachedAddr)

	contentRepo := repository.NewContentRepository(db, mc)
	actorRepo := repository.NewActorRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	metaGateway := providers.NewContentMetaGateway(contentRepo)

	signal := service.NewSignalService(rdb)
	auth := service.NewAuthService(conf.Auth)
	resolver := slug.NewResolver()

	contentUC := usecase.NewContentUsecase(contentRepo, actorRepo, collectionRepo, engagementRepo, resolver)
	actorUC := usecase.NewActorUsecase(actorRepo, collectionRepo, engagementRepo, resolver)
	engagementUC := usecase.NewEngagementUsecase(engagementRepo, signal)
	collectionUC := usecase.NewCollectionUsecase(collectionRepo, contentRepo)
	curationUC := usecase.NewCurationUsecase(actorRepo, contentRepo, metaGateway, collectionUC, engagementRepo)

	handler := rest.NewHandler(contentUC, actorUC, engagementUC, collectionUC, curationUC, signal, auth)
	authMW := middleware.NewAuthMiddleware(auth)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware(conf.Site.FQDN))
	}
	e.Use(middleware.RequestTimeout(time.Duration(conf.Server.RequestTimeoutSeconds) * time.Second))
	e.Use(authMW.IdentifyIdentity)

	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTraceProvider(conf config.Config) (func(), error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(conf.Server.TraceEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName("unmatchedlines"),
			semconv.ServiceInstanceID(conf.Site.FQDN),
		),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			slog.Error("failed to shut down trace provider", slog.String("error", err.Error()))
		}
	}, nil
}
