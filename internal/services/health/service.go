package health

import (
	"context"
	"time"
)

// Pinger is a dependency that can report reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// CachePinger is the cache side of the health check.
type CachePinger interface {
	Enabled() bool
	Ping(ctx context.Context) error
}

// Report is the health payload.
type Report struct {
	OK       bool              `json:"ok"`
	Checks   map[string]string `json:"checks"`
	Profile  string            `json:"profile,omitempty"`
	Duration float64           `json:"durationMs"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB      Pinger
	Cache   CachePinger
	Profile string
	Timeout time.Duration
}

// NewService constructs a new health service. Nil dependencies are reported as not configured.
func NewService(db Pinger, cache CachePinger, profileVersion string) *Service {
	return &Service{DB: db, Cache: cache, Profile: profileVersion, Timeout: 2 * time.Second}
}

// Status pings each dependency. The database is required when configured; the cache is advisory.
func (s *Service) Status(ctx context.Context) Report {
	start := time.Now()
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	report := Report{OK: true, Checks: map[string]string{}, Profile: s.Profile}

	switch {
	case s.DB == nil:
		report.Checks["database"] = "memory"
	case s.DB.PingContext(ctx) != nil:
		report.Checks["database"] = "unreachable"
		report.OK = false
	default:
		report.Checks["database"] = "ok"
	}

	switch {
	case s.Cache == nil || !s.Cache.Enabled():
		report.Checks["cache"] = "disabled"
	case s.Cache.Ping(ctx) != nil:
		report.Checks["cache"] = "degraded"
	default:
		report.Checks["cache"] = "ok"
	}

	report.Duration = float64(time.Since(start).Microseconds()) / 1000.0
	return report
}
