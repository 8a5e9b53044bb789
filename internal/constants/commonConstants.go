package constants

type (
	HealthState string
	CachePrefix string
)

const (
	HealthHealthy   HealthState = "healthy"
	HealthDegraded  HealthState = "degraded"
	HealthUnhealthy HealthState = "unhealthy"

	CachePrefixHealthSnapshot CachePrefix = "HEALTH_SNAPSHOT_"
	CachePrefixRevokedToken   CachePrefix = "REVOKED_TOKEN_"

	TokenTypeBearer = "bearer"
)
