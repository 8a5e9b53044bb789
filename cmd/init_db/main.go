package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"global-healthops/nexus/internal/auth"
	"global-healthops/nexus/internal/common"
	"global-healthops/nexus/internal/config"
	"global-healthops/nexus/internal/db"
	"global-healthops/nexus/internal/db/repositories"
	"global-healthops/nexus/internal/logging"
	"global-healthops/nexus/internal/models/dtos"
	"global-healthops/nexus/internal/services"
)

// init_db migrates the schema and creates the initial superuser if it is
// missing. Safe to run repeatedly.
func main() {
	email := flag.String("email", "admin@example.com", "superuser email")
	name := flag.String("name", "System Administrator", "superuser full name")
	password := flag.String("password", "changeme123", "superuser password")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logging.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Close()

	orm, err := db.OpenORM(cfg.Database)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if sqlDB, err := orm.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := db.Migrate(orm); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	svc := services.NewAuthService(
		repositories.NewUserRepositoryGORM(orm),
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.AccessTokenTTL),
		auth.NewCacheDenylist(common.NewCacheService(time.Minute, time.Minute)),
		nil,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := svc.EnsureSuperuser(ctx, &dtos.UserCreate{Email: *email, FullName: *name, Password: *password})
	if err != nil {
		log.Fatalf("create superuser: %v", err)
	}
	if created && *password == "changeme123" {
		logging.Warn("Superuser created with the default password; change it", "email", *email)
	}

	fmt.Println("Database initialized successfully!")
}
