package health

import (
	"context"
	"errors"
	"strconv"
	"time"

	"global-healthops/nexus/internal/common"
	"global-healthops/nexus/internal/constants"
	"global-healthops/nexus/internal/metrics"
	"global-healthops/nexus/internal/models/entities"

	"golang.org/x/sync/errgroup"
)

// ErrDegraded marks a check that ran but could only partially verify its
// component. Wrap it to report degraded instead of unhealthy.
var ErrDegraded = errors.New("degraded")

// Checker verifies one dependency. Details are optional.
type Checker interface {
	Name() string
	Check(ctx context.Context) (map[string]interface{}, error)
}

// Options configure an Aggregator.
type Options struct {
	Version          string
	Environment      string
	CacheTTL         time.Duration
	ComponentTimeout time.Duration
	StartedAt        time.Time
	Metrics          *metrics.MetricsRegistry
}

// Aggregator computes and memoizes the system health snapshot. A snapshot is
// reused for every request in the same floor(now/CacheTTL) window.
type Aggregator struct {
	opts     Options
	checkers []Checker
	cache    *common.CacheService
}

func NewAggregator(opts Options, checkers ...Checker) *Aggregator {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Second
	}
	if opts.ComponentTimeout <= 0 {
		opts.ComponentTimeout = 5 * time.Second
	}
	if opts.StartedAt.IsZero() {
		opts.StartedAt = time.Now()
	}
	return &Aggregator{
		opts:     opts,
		checkers: checkers,
		cache:    common.NewCacheService(opts.CacheTTL, 2*opts.CacheTTL),
	}
}

// Snapshot returns the health status for the window containing now. Within a
// window every call returns the same *HealthStatus; callers must not modify it.
func (a *Aggregator) Snapshot(ctx context.Context, now time.Time) *entities.HealthStatus {
	key := a.cacheKey(now)

	// The snapshot is shared by the whole window, so a caller going away
	// must not cut the checks short. Only ComponentTimeout bounds them.
	computeCtx := context.WithoutCancel(ctx)
	val, hit, _ := a.cache.GetOrSet(key, a.opts.CacheTTL, func() (any, error) {
		return a.compute(computeCtx, now), nil
	})

	if m := a.opts.Metrics; m != nil {
		if hit {
			m.CacheHitsTotal.WithLabelValues("health").Inc()
		} else {
			m.CacheMissesTotal.WithLabelValues("health").Inc()
		}
	}

	return val.(*entities.HealthStatus)
}

func (a *Aggregator) cacheKey(now time.Time) string {
	window := now.UnixNano() / int64(a.opts.CacheTTL)
	return string(constants.CachePrefixHealthSnapshot) + strconv.FormatInt(window, 10)
}

func (a *Aggregator) compute(ctx context.Context, now time.Time) *entities.HealthStatus {
	results := make([]entities.ComponentStatus, len(a.checkers))

	var g errgroup.Group
	for i, c := range a.checkers {
		i, c := i, c
		g.Go(func() error {
			results[i] = a.run(ctx, c, now)
			return nil
		})
	}
	_ = g.Wait()

	components := make(map[string]entities.ComponentStatus, len(a.checkers))
	for i, c := range a.checkers {
		components[c.Name()] = results[i]
		if m := a.opts.Metrics; m != nil {
			v := 0.0
			if results[i].Status == constants.HealthHealthy {
				v = 1
			}
			m.ComponentHealth.WithLabelValues(c.Name()).Set(v)
		}
	}

	return &entities.HealthStatus{
		Status:        Overall(components),
		Version:       a.opts.Version,
		Environment:   a.opts.Environment,
		Timestamp:     now.UTC(),
		UptimeSeconds: now.Sub(a.opts.StartedAt).Seconds(),
		Components:    components,
	}
}

type outcome struct {
	details map[string]interface{}
	err     error
}

// run executes one check under the component timeout. A check that overruns
// is abandoned; its late result is dropped.
func (a *Aggregator) run(ctx context.Context, c Checker, now time.Time) entities.ComponentStatus {
	ctx, cancel := context.WithTimeout(ctx, a.opts.ComponentTimeout)
	defer cancel()

	start := time.Now()
	done := make(chan outcome, 1)
	go func() {
		details, err := c.Check(ctx)
		done <- outcome{details: details, err: err}
	}()

	status := entities.ComponentStatus{LastChecked: now.UTC()}

	select {
	case o := <-done:
		status.LatencyMs = float64(time.Since(start).Microseconds()) / 1000
		status.Details = o.details
		switch {
		case o.err == nil:
			status.Status = constants.HealthHealthy
		case errors.Is(o.err, ErrDegraded):
			status.Status = constants.HealthDegraded
			status.Error = o.err.Error()
		default:
			status.Status = constants.HealthUnhealthy
			status.Error = o.err.Error()
		}
	case <-ctx.Done():
		status.Status = constants.HealthUnhealthy
		status.LatencyMs = float64(a.opts.ComponentTimeout.Milliseconds())
		status.Error = constants.MsgComponentCheckTimedOut
	}

	return status
}

// Overall derives the system status by strict priority: any unhealthy
// component wins, then any degraded one.
func Overall(components map[string]entities.ComponentStatus) constants.HealthState {
	overall := constants.HealthHealthy
	for _, c := range components {
		switch c.Status {
		case constants.HealthUnhealthy:
			return constants.HealthUnhealthy
		case constants.HealthDegraded:
			overall = constants.HealthDegraded
		}
	}
	return overall
}
