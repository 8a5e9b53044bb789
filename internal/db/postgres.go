package db

import (
	"fmt"
	"time"

	"global-healthops/nexus/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	connectAttempts = 10
	connectBackoff  = 500 * time.Millisecond
)

// OpenProbe returns the raw handle used by the database health check. For
// postgres it is a dedicated lib/pq connection, retried while the server
// starts; for sqlite it shares the ORM's pool.
func OpenProbe(cfg config.Database, orm *gorm.DB) (*sqlx.DB, error) {
	if cfg.Driver != "postgres" {
		sqlDB, err := orm.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get connection pool: %w", err)
		}
		return sqlx.NewDb(sqlDB, "sqlite3"), nil
	}

	var (
		probe *sqlx.DB
		err   error
	)
	for i := 0; i < connectAttempts; i++ {
		probe, err = sqlx.Connect("postgres", cfg.DSN)
		if err == nil {
			probe.SetMaxOpenConns(2)
			return probe, nil
		}
		time.Sleep(connectBackoff)
	}
	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", connectAttempts, err)
}
