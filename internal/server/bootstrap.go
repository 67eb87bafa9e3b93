package server

import (
	"context"
	"errors"
	"fmt"

	"customerapi/internal/config"
	"customerapi/internal/database"
	"customerapi/internal/middleware"
	"customerapi/internal/repositories"
	"customerapi/internal/security"
	"customerapi/internal/services"
	"customerapi/internal/validation"
	"customerapi/pkg/rabbitmq"
	"customerapi/pkg/redisstore"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Runtime is a ready-to-serve app together with the resources it holds.
type Runtime struct {
	App     *fiber.App
	closers []func() error
}

// Close releases every resource opened by Bootstrap, last opened first.
func (r *Runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Bootstrap opens the store and optional brokers named by cfg and builds the app.
func Bootstrap(cfg *config.Config, log *zap.Logger) (*Runtime, error) {
	rt := &Runtime{}
	fail := func(err error) (*Runtime, error) {
		_ = rt.Close()
		return nil, err
	}

	var (
		repo  repositories.CustomerRepository
		ready func(ctx context.Context) error
	)
	if cfg.Database.Driver == database.DriverMemory {
		log.Warn("using in-memory customer store; data is lost on exit")
		repo = repositories.NewMemoryCustomerRepository()
	} else {
		db, err := openDatabase(cfg.Database, log)
		if err != nil {
			return fail(err)
		}
		rt.closers = append(rt.closers, func() error { return database.Close(db) })
		repo = repositories.NewGORMCustomerRepository(db)
		ready = func(ctx context.Context) error { return database.Ping(ctx, db) }
	}

	rules := validation.DefaultRules()
	if cfg.Validation.EmailPattern != "" {
		var err error
		if rules, err = validation.RulesWithEmailPattern(cfg.Validation.EmailPattern); err != nil {
			return fail(fmt.Errorf("invalid VALIDATION_EMAIL_PATTERN: %w", err))
		}
	}

	hasher := security.NewPasswordHasher(security.HasherOptions{
		Iterations: cfg.Hashing.Iterations,
		SaltSize:   cfg.Hashing.SaltSize,
		KeySize:    cfg.Hashing.KeySize,
	})
	log.Info("password hashing configured", zap.Int("iterations", hasher.Iterations()))

	var opts []services.Option
	if cfg.RabbitMQ.URL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
		if err != nil {
			return fail(err)
		}
		rt.closers = append(rt.closers, mq.Close)
		opts = append(opts, services.WithEventPublisher(mq))
		log.Info("publishing customer events", zap.String("queue", cfg.RabbitMQ.Queue))
	}

	limit := middleware.RateLimitConfig{Max: cfg.RateLimit.Max, Window: cfg.RateLimit.Window}
	if cfg.RateLimit.RedisURL != "" {
		store, err := redisstore.New(redisstore.Config{URL: cfg.RateLimit.RedisURL})
		if err != nil {
			return fail(err)
		}
		rt.closers = append(rt.closers, store.Close)
		limit.Storage = store
	}

	deps := Dependencies{
		Logger:    log,
		Customers: services.NewCustomerService(repo, validation.NewCustomerValidator(rules), hasher, opts...),
		Ready:     ready,
		RateLimit: limit,
	}
	if cfg.Auth.JWTSecret != "" {
		deps.Tokens = services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	}
	rt.App = New(deps)
	return rt, nil
}

func openDatabase(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.Open(cfg.Driver, cfg.DSN, log)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			_ = database.Close(db)
			return nil, err
		}
		log.Info("database schema migrated", zap.String("driver", cfg.Driver))
	}
	return db, nil
}
