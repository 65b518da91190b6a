package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/joho/godotenv/autoload"
	nats "github.com/nats-io/nats.go"
	handler "github.com/romashorodok/content-site/backend/internal/handler/v1"
	"github.com/romashorodok/content-site/backend/internal/handler/web"
	"github.com/romashorodok/content-site/backend/internal/render"
	"github.com/romashorodok/content-site/backend/internal/service"
	"github.com/romashorodok/content-site/backend/internal/worker"
	"github.com/romashorodok/content-site/pkg/cmsclient"
	"github.com/romashorodok/content-site/pkg/envutils"
	"github.com/romashorodok/content-site/pkg/httputils"
	"github.com/romashorodok/content-site/pkg/logutils"
	"github.com/romashorodok/content-site/pkg/natsinfo"
	"github.com/romashorodok/content-site/pkg/redirects"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:            envutils.Env("SERVER_ADDR", ":8080"),
		ReadTimeout:     envutils.EnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    envutils.EnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ShutdownTimeout: envutils.EnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

type RedirectsConfig struct {
	File  string
	Watch bool
}

func NewRedirectsConfig() *RedirectsConfig {
	return &RedirectsConfig{
		File:  envutils.Env("REDIRECTS_FILE", ""),
		Watch: envutils.EnvBool("REDIRECTS_WATCH", true),
	}
}

type NewRedirectorParams struct {
	fx.In
	Lifecycle fx.Lifecycle

	Config *RedirectsConfig
	Logger *zap.Logger
}

func NewRedirector(params NewRedirectorParams) (*redirects.Redirector, error) {
	table, err := redirects.NewTable(nil)
	if err != nil {
		return nil, err
	}
	if params.Config.File != "" {
		loaded, err := redirects.Load(params.Config.File)
		if err != nil {
			return nil, err
		}
		table = loaded
	}

	redirector := redirects.NewRedirector(table, params.Logger)
	if params.Config.File == "" || !params.Config.Watch {
		return redirector, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := redirector.Watch(ctx, params.Config.File); err != nil {
					params.Logger.Error("redirects watcher stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
	return redirector, nil
}

type NewRouterParams struct {
	fx.In

	Handlers   []httputils.Handler `group:"handlers"`
	Redirector *redirects.Redirector
	Logger     *zap.Logger
}

func NewRouter(params NewRouterParams) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		httputils.RequestLogger(params.Logger.Named("http")),
		middleware.Recoverer,
		params.Redirector.Middleware,
	)

	for _, h := range params.Handlers {
		h.OnRouter(router)
	}
	return router
}

type NewCMSClientParams struct {
	fx.In

	Config *cmsclient.Config
	Logger *zap.Logger
}

func NewCMSClient(params NewCMSClientParams) (*cmsclient.Client, error) {
	return cmsclient.NewClient(params.Config, params.Logger)
}

type NewStoreParams struct {
	fx.In

	JS nats.JetStreamContext `optional:"true"`
}

func NewStore(params NewStoreParams) (natsinfo.Store, error) {
	return natsinfo.NewStore(params.JS)
}

type StartHTTPServerParams struct {
	fx.In
	Lifecycle fx.Lifecycle

	Config *ServerConfig
	Router *chi.Mux
	Logger *zap.Logger
}

func StartHTTPServer(params StartHTTPServerParams) {
	server := &http.Server{
		Addr:         params.Config.Addr,
		Handler:      params.Router,
		ReadTimeout:  params.Config.ReadTimeout,
		WriteTimeout: params.Config.WriteTimeout,
	}
	logger := params.Logger.Named("server")

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listener, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			logger.Info("listening", zap.String("addr", listener.Addr().String()))
			go func() {
				if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, params.Config.ShutdownTimeout)
			defer cancel()
			return server.Shutdown(ctx)
		},
	})
}

func main() {
	fx.New(
		fx.WithLogger(logutils.NewFxLogger),
		fx.Provide(
			logutils.NewLoggerConfig,
			logutils.NewLogger,

			natsinfo.NewNatsConfig,
			natsinfo.NewNatsConnection,
			NewStore,

			cmsclient.NewConfig,
			NewCMSClient,

			render.NewRenderer,

			service.NewServiceConfig,
			service.NewPostCache,
			service.NewPostService,
			service.NewDirectoryService,
			service.NewFAQService,
			service.NewLegalService,
			service.NewCacheInvalidator,
			service.NewEventPublisher,

			handler.NewWebhookConfig,
			web.NewSiteConfig,
			httputils.AsHandler(httputils.HANDLERS_GROUP_TAG, handler.NewPostHandler),
			httputils.AsHandler(httputils.HANDLERS_GROUP_TAG, handler.NewDirectoryHandler),
			httputils.AsHandler(httputils.HANDLERS_GROUP_TAG, handler.NewWebhookHandler),
			httputils.AsHandler(httputils.HANDLERS_GROUP_TAG, web.NewPagesHandler),

			NewRedirectsConfig,
			NewRedirector,
			NewRouter,
			NewServerConfig,

			worker.NewCacheWarmerConfig,
		),
		fx.Invoke(
			worker.StartCMSEventConsumerWorker,
			worker.StartCacheWarmer,
			StartHTTPServer,
		),
	).Run()
}
