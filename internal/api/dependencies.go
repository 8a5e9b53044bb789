package api

import (
	"errors"
	"time"

	"global-healthops/nexus/internal/auth"
	"global-healthops/nexus/internal/common"
	"global-healthops/nexus/internal/config"
	"global-healthops/nexus/internal/db/repositories"
	"global-healthops/nexus/internal/health"
	"global-healthops/nexus/internal/metrics"
	"global-healthops/nexus/internal/services"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Infra holds the connections opened at startup. Probe and Redis are optional.
type Infra struct {
	ORM   *gorm.DB
	Probe *sqlx.DB
	Redis *redis.Client
}

type Repositories struct {
	User         *repositories.UserRepositoryGORM
	Patient      *repositories.PatientRepository
	HealthRecord *repositories.HealthRecordRepository
}

type Services struct {
	Auth         *services.AuthService
	Patient      *services.PatientService
	HealthRecord *services.HealthRecordService
	Health       *health.Aggregator
	// Revocations is the store behind the token denylist.
	Revocations common.CacheInterface
}

type Dependencies struct {
	Config   *config.Config
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

// InitDependencies wires repositories and services. metricsReg may be nil.
func InitDependencies(cfg *config.Config, infra Infra, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	if cfg == nil || infra.ORM == nil {
		return nil, errors.New("config and database are required")
	}

	repoOpts := []repositories.Option{
		repositories.WithPagination(repositories.Pagination{
			DefaultLimit: cfg.Pagination.DefaultLimit,
			MaxLimit:     cfg.Pagination.MaxLimit,
		}),
	}
	if metricsReg != nil {
		repoOpts = append(repoOpts, repositories.WithObserver(metricsReg.ObserveDBOperation))
	}

	repos := &Repositories{
		User:         repositories.NewUserRepositoryGORM(infra.ORM, repoOpts...),
		Patient:      repositories.NewPatientRepository(infra.ORM, repoOpts...),
		HealthRecord: repositories.NewHealthRecordRepository(infra.ORM, repoOpts...),
	}

	var revocations common.CacheInterface
	if infra.Redis != nil {
		revocations = common.NewRedisCacheService(infra.Redis)
	} else {
		revocations = common.NewCacheService(cfg.Auth.AccessTokenTTL, 10*time.Minute)
	}

	authSvc := services.NewAuthService(
		repos.User,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.AccessTokenTTL),
		auth.NewCacheDenylist(revocations),
		metricsReg,
	)

	checkers := []health.Checker{health.NewSystemChecker()}
	if infra.Probe != nil {
		checkers = append(checkers, health.NewDatabaseChecker(infra.Probe, metricsReg))
	}
	if infra.Redis != nil {
		checkers = append(checkers, health.NewRedisChecker(infra.Redis))
	}

	aggregator := health.NewAggregator(health.Options{
		Version:          cfg.Version,
		Environment:      cfg.AppEnv,
		CacheTTL:         cfg.Health.CacheTTL,
		ComponentTimeout: cfg.Health.ComponentTimeout,
		StartedAt:        time.Now(),
		Metrics:          metricsReg,
	}, checkers...)

	svcs := &Services{
		Auth:         authSvc,
		Patient:      services.NewPatientService(repos.Patient, cfg.Pagination.SearchMinLength, metricsReg),
		HealthRecord: services.NewHealthRecordService(repos.Patient, repos.HealthRecord, metricsReg),
		Health:       aggregator,
		Revocations:  revocations,
	}

	return &Dependencies{
		Config:   cfg,
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil
}
