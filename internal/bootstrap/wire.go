package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/application/account"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/baechuer/real-time-ressys/services/user-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/infrastructure/redis"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/infrastructure/security"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/logger"
	http_handlers "github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/handlers"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/response"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/transport/http/router"
)

const jwtIssuer = "user-service"

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string) (DBCloser, error)

	NewRedis func(addr, password string, db int) *redis.Client

	NewPublisher func(rabbitURL string) (Publisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type Publisher interface {
	PublishVerificationEmail(ctx context.Context, evt account.VerificationEmailEvent) error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	// 2) user repo
	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	userRepo := postgres.NewUserRepo(sqlDB)

	// 3) redis (best-effort; rate limiting degrades open without it)
	var redisCli *redis.Client
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, "", 0)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if c == nil {
			logger.Logger.Warn().Msg("redis client not constructed; rate limiting disabled")
		} else if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; rate limiting disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 4) publisher
	var pub Publisher
	if deps.NewPublisher != nil && cfg.RabbitURL != "" {
		p, err := deps.NewPublisher(cfg.RabbitURL)
		if err != nil {
			if cfg.IsDev() {
				logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
				pub = memory.NewNoopPublisher()
			} else {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
		} else {
			pub = p
		}
	} else {
		pub = memory.NewNoopPublisher()
	}

	if c, ok := pub.(interface{ Close() error }); ok {
		cleanupFns = append(cleanupFns, func() { _ = c.Close() })
	}

	// 5) security
	hasher := security.NewBcryptHasher(12)
	codec, err := security.NewTokenCodec(cfg.JWTSecret, jwtIssuer)
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// seed (dev only)
	if cfg.IsDev() && cfg.SeedAdminEmail != "" {
		hash, err := hasher.Hash(cfg.SeedAdminPassword)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("admin seed skipped")
		} else if err := postgres.SeedAdmin(context.Background(), sqlDB, cfg.SeedAdminEmail, hash); err != nil {
			logger.Logger.Warn().Err(err).Msg("admin seed failed")
		} else {
			logger.Logger.Info().Str("email", cfg.SeedAdminEmail).Msg("admin account seeded")
		}
	}

	// 6) service
	accountSvc := account.NewService(userRepo, hasher, codec, pub, account.Config{
		AccessTTL:          cfg.AccessTokenTTL,
		VerifyEmailTTL:     cfg.VerifyEmailTokenTTL,
		VerifyEmailBaseURL: cfg.VerifyEmailBaseURL,
	})

	// 7) handlers + middleware
	userH := http_handlers.NewUserHandler(accountSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	authMW := middleware.Auth(codec, userRepo, response.WriteError)
	optAuthMW := middleware.OptionalAuth(codec, userRepo)
	modMW := middleware.RequireAtLeast(string(domain.RoleModerator), response.WriteError)

	// rate limit (fail-open)
	rl := func(key string, limit int) func(http.Handler) http.Handler {
		if redisCli == nil {
			return nil
		}
		limiter := redis.NewFixedWindowLimiter(redisCli, limit, cfg.RateLimitWindow)
		return middleware.RateLimit(limiter, key, response.WriteError)
	}

	// 8) router
	mux, err := deps.NewRouter(router.Deps{
		Health:      healthH,
		Users:       userH,
		RequestIDMW: middleware.RequestID,
		AuthMW:      authMW,
		OptAuthMW:   optAuthMW,
		ModMW:       modMW,

		RegisterLimitMW: rl("user.register", cfg.RateLimitRegister),
		LoginLimitMW:    rl("user.login", cfg.RateLimitLogin),

		HardeningMW: []func(http.Handler) http.Handler{
			middleware.SecurityHeaders(!cfg.IsDev()),
			middleware.CORS(cfg.CORSAllowedOrigins),
			middleware.BodyLimit(cfg.BodyMaxBytes),
		},
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string) (DBCloser, error) {
			return config.NewDB(addr)
		},
		NewRedis: redis.New,
		NewPublisher: func(url string) (Publisher, error) {
			return rabbitmq_pub.NewPublisher(url)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
