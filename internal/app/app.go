// Package app cablea configuración, persistencia, servicios y transporte
// HTTP, y maneja el ciclo de vida del servidor.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	rdb "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/kasadel/mallcore/internal/auth"
	"github.com/kasadel/mallcore/internal/cache"
	"github.com/kasadel/mallcore/internal/config"
	"github.com/kasadel/mallcore/internal/email"
	"github.com/kasadel/mallcore/internal/http/controllers"
	"github.com/kasadel/mallcore/internal/http/router"
	"github.com/kasadel/mallcore/internal/observability/logger"
	"github.com/kasadel/mallcore/internal/rate"
	"github.com/kasadel/mallcore/internal/service"
	"github.com/kasadel/mallcore/internal/store"
	"github.com/kasadel/mallcore/internal/store/core"
)

// App es el servicio armado y listo para servir.
type App struct {
	cfg     *config.Config
	repo    core.Repository
	cacheC  cache.Client
	handler http.Handler
	server  *http.Server
}

// New construye todas las capas a partir de la configuración.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "mallcore",
	})
	log := logger.Named("app")

	repo, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("app: abrir storage: %w", err)
	}

	var ttl time.Duration
	if cfg.Cache.Memory.DefaultTTL != "" {
		ttl, _ = time.ParseDuration(cfg.Cache.Memory.DefaultTTL)
	}
	cacheC, err := cache.New(cache.Config{
		Kind:       cfg.Cache.Kind,
		Addr:       cfg.Cache.Redis.Addr,
		Password:   cfg.Cache.Redis.Password,
		DB:         cfg.Cache.Redis.DB,
		Prefix:     cfg.Cache.Redis.Prefix,
		DefaultTTL: ttl,
	})
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("app: abrir cache: %w", err)
	}

	issuer, err := auth.NewIssuer(cfg.JWT.Issuer, cfg.JWT.Secret, cfg.AccessTTL())
	if err != nil {
		repo.Close()
		return nil, err
	}

	var limiter rate.Limiter
	if cfg.Rate.Enabled {
		window, err := time.ParseDuration(cfg.Rate.Window)
		if err != nil {
			window = time.Minute
		}
		if cfg.Cache.Kind == "redis" {
			client := rdb.NewClient(&rdb.Options{
				Addr:     cfg.Cache.Redis.Addr,
				Password: cfg.Cache.Redis.Password,
				DB:       cfg.Cache.Redis.DB,
			})
			limiter = rate.NewRedisLimiter(client, cfg.Cache.Redis.Prefix+"rl:", cfg.Rate.MaxRequests, window)
		} else {
			limiter = rate.NewMemoryLimiter(cfg.Rate.MaxRequests, window)
		}
	}

	sender := email.New(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	authSvc := service.NewAuthService(repo, issuer, cacheC, cfg.RefreshTTL())
	catalogSvc := service.NewCatalogService(repo)
	inquirySvc := service.NewInquiryService(repo)
	couponSvc := service.NewCouponService(repo)
	orderSvc := service.NewOrderService(repo, sender, cfg.Commerce.MileageAccrualPercent)

	handler := router.New(router.Deps{
		Issuer:  issuer,
		Limiter: limiter,
		Auth:    controllers.NewAuthController(authSvc),
		Catalog: controllers.NewCatalogController(catalogSvc),
		Inquiry: controllers.NewInquiryController(inquirySvc),
		Coupon:  controllers.NewCouponController(couponSvc),
		Order:   controllers.NewOrderController(orderSvc, authSvc),
		Health:  controllers.NewHealthController(repo),
	})

	log.Info("aplicación construida",
		logger.String("env", cfg.App.Env),
		logger.String("storage", cfg.Storage.Driver),
		logger.String("cache", cfg.Cache.Kind),
	)

	return &App{
		cfg:     cfg,
		repo:    repo,
		cacheC:  cacheC,
		handler: handler,
		server: &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler expone el router armado (para tests con httptest o serve custom).
func (a *App) Handler() http.Handler { return a.handler }

// Run sirve en cfg.Server.Addr hasta que el contexto se cancele, con
// shutdown graceful.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("app: listen %s: %w", a.cfg.Server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve sirve sobre el listener dado. Permite a los tests e2e levantar el
// proceso en un puerto efímero.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	log := logger.Named("app")
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("servidor escuchando", logger.String("addr", ln.Addr().String()))
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("apagando servidor")
		return a.server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	a.close()
	return err
}

func (a *App) close() {
	a.repo.Close()
	if a.cacheC != nil {
		_ = a.cacheC.Close()
	}
	_ = logger.Sync()
}
