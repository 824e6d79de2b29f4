package health

import (
	"context"
	"time"
)

// Status is the aggregated health status.
type Status string

const (
	// Healthy indicates all components respond.
	Healthy Status = "ok"
	// Degraded indicates at least one failing component.
	Degraded Status = "degraded"
)

// CheckResult is an individual component outcome.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

// checkTimeout bounds each component ping.
const checkTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status    Status
	Checks    map[string]CheckResult
	CheckedAt time.Time
}

// Service pings the database and, when configured, the artist cache.
type Service struct {
	db    Pinger
	cache Pinger
	now   func() time.Time
}

// New creates a Service. cache can be nil.
func New(db, cache Pinger) *Service {
	return &Service{db: db, cache: cache, now: time.Now}
}

// Check pings every component.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{"database": ping(ctx, s.db)}
	if s.cache != nil {
		checks["cache"] = ping(ctx, s.cache)
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	return Report{Status: status, Checks: checks, CheckedAt: s.now().UTC()}
}

func ping(ctx context.Context, p Pinger) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}
