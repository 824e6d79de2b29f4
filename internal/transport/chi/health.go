package chi

import (
	"net/http"

	healthuc "github.com/gearsh/gearsh-api/internal/usecase/health"
	"github.com/gearsh/gearsh-api/internal/version"
)

// Health handles GET /api/health. A degraded report answers 503.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthDTO{
		Success:   report.Status == healthuc.Healthy,
		Status:    string(report.Status),
		Checks:    checks,
		Version:   version.Version,
		Timestamp: report.CheckedAt,
	})
}
