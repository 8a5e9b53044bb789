package health

import (
	"context"
	"fmt"

	"global-healthops/nexus/internal/metrics"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// DatabaseChecker runs SELECT 1 on the probe connection and reports pool usage.
type DatabaseChecker struct {
	db      *sqlx.DB
	metrics *metrics.MetricsRegistry
}

func NewDatabaseChecker(db *sqlx.DB, m *metrics.MetricsRegistry) *DatabaseChecker {
	return &DatabaseChecker{db: db, metrics: m}
}

func (c *DatabaseChecker) Name() string { return "database" }

func (c *DatabaseChecker) Check(ctx context.Context) (map[string]interface{}, error) {
	var one int
	if err := c.db.GetContext(ctx, &one, "SELECT 1"); err != nil {
		return nil, fmt.Errorf("database probe failed: %w", err)
	}

	stats := c.db.Stats()
	if c.metrics != nil {
		c.metrics.DBConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
		c.metrics.DBConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
		c.metrics.DBConnections.WithLabelValues("idle").Set(float64(stats.Idle))
	}

	return map[string]interface{}{
		"driver":           c.db.DriverName(),
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"max_open":         stats.MaxOpenConnections,
	}, nil
}

// RedisChecker pings redis and reports pool statistics.
type RedisChecker struct {
	client *redis.Client
}

func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

func (c *RedisChecker) Name() string { return "redis" }

func (c *RedisChecker) Check(ctx context.Context) (map[string]interface{}, error) {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	stats := c.client.PoolStats()
	return map[string]interface{}{
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"hits":        stats.Hits,
		"misses":      stats.Misses,
	}, nil
}

// SystemChecker reports host resource usage. Unreadable host metrics make the
// component degraded, never unhealthy.
type SystemChecker struct {
	read func(ctx context.Context) (HostStats, error)
}

func NewSystemChecker() *SystemChecker {
	return &SystemChecker{read: ReadHostStats}
}

func (c *SystemChecker) Name() string { return "system" }

func (c *SystemChecker) Check(ctx context.Context) (map[string]interface{}, error) {
	stats, err := c.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegraded, err)
	}
	return map[string]interface{}{
		"memory_used_percent": stats.MemoryPercent,
		"cpu_percent":         stats.CPUPercent,
		"disk_usage_percent":  stats.DiskPercent,
	}, nil
}
