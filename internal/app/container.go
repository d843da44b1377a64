package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"exercise-tracker/internal/config"
	"exercise-tracker/internal/database"
	"exercise-tracker/internal/database/migration"
	dbpostgres "exercise-tracker/internal/database/postgres"
	"exercise-tracker/internal/domain/exercise"
	"exercise-tracker/internal/domain/user"
	"exercise-tracker/internal/infrastructure/cache"
	"exercise-tracker/internal/infrastructure/persistence/memory"
	"exercise-tracker/internal/infrastructure/persistence/mongo"
	"exercise-tracker/internal/repository"
	"exercise-tracker/internal/usecase"
	"exercise-tracker/internal/ws"

	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Container owns every long lived dependency of the process.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	Driver config.Driver

	DB    database.DB
	Mongo *mongo.DB
	Cache *cache.Redis
	Hub   *ws.Hub

	Users     user.Repository
	Exercises exercise.Repository

	UserUsecase     usecase.UserUsecase
	ExerciseUsecase usecase.ExerciseUsecase

	pinger func(ctx context.Context) error
}

type ContainerOption func(*containerOptions)

type containerOptions struct {
	migrate bool
	clock   func() time.Time
}

// WithMigrations applies pending SQL migrations after connecting to Postgres.
func WithMigrations() ContainerOption {
	return func(o *containerOptions) { o.migrate = true }
}

func WithContainerClock(now func() time.Time) ContainerOption {
	return func(o *containerOptions) { o.clock = now }
}

func NewContainer(cfg config.Config, logger *zap.Logger, opts ...ContainerOption) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var o containerOptions
	for _, opt := range opts {
		opt(&o)
	}

	driver, err := cfg.Database.Driver()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	c := &Container{Config: cfg, Logger: logger, Driver: driver}

	switch driver {
	case config.DriverPostgres:
		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.DB = db
		if o.migrate {
			r := migration.Runner{Source: migration.Source(cfg.Database.MigrationsDir), Logger: logger}
			if _, err := r.Run(ctx, db.SQLDB()); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		c.Users = repository.NewPostgresUserRepository(db)
		c.Exercises = repository.NewPostgresExerciseRepository(db)
		c.pinger = db.Ping

	case config.DriverMongo:
		mdb, err := mongo.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		c.Mongo = mdb
		c.Users = mdb.Users()
		c.Exercises = mdb.Exercises()
		c.pinger = mdb.Ping

	case config.DriverMemory:
		store := memory.NewStore()
		c.Users = store.Users()
		c.Exercises = store.Exercises()
		c.pinger = store.Ping
	}

	logger.Info("store connected", zap.String("driver", string(driver)))

	if cfg.Redis.Enabled() {
		c.Cache = cache.NewRedis(ctx, cfg.Redis, logger)
		if c.Cache.Enabled() {
			c.Users = repository.NewCachedUserRepository(c.Users, c.Cache,
				repository.CacheNamespace(cfg.App.AppName, string(driver), cfg.Database.URL),
				cfg.Redis.TTL, logger)
		}
	}

	exerciseOpts := []usecase.ExerciseOption{}
	if o.clock != nil {
		exerciseOpts = append(exerciseOpts, usecase.WithClock(o.clock))
	}
	if cfg.Feed.Enabled() {
		c.Hub = ws.NewHub(logger)
		exerciseOpts = append(exerciseOpts, usecase.WithNotifier(ws.NewNotifier(c.Hub)))
	}

	c.UserUsecase = usecase.NewUserUsecase(c.Users, logger)
	c.ExerciseUsecase = usecase.NewExerciseUsecase(c.Users, c.Exercises, logger, exerciseOpts...)

	return c, nil
}

// Ping checks the store and, when enabled, the cache.
func (c *Container) Ping(ctx context.Context) error {
	if c == nil || c.pinger == nil {
		return errors.New("store not configured")
	}
	if err := c.pinger(ctx); err != nil {
		return err
	}
	if c.Cache != nil && c.Cache.Enabled() {
		return c.Cache.Ping(ctx)
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	if c.Mongo != nil {
		errs = append(errs, c.Mongo.Close())
	}
	return errors.Join(errs...)
}
