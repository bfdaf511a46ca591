package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/rfalmeida/facility-control/internal/models"
	"github.com/rfalmeida/facility-control/internal/repo"
)

// StatsHandler composes the aggregation queries behind the dashboard and
// security pages. Each count is independently optional: a failed query is
// logged and reported as zero/empty so one bad query never blanks the whole
// page.
type StatsHandler struct {
	Stats      *repo.StatsRepo
	Activities *repo.ActivityRepo
	Logs       *repo.AccessLogRepo
	Areas      *repo.AreaRepo
	Logger     *slog.Logger
}

func (h *StatsHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// count runs one count query, degrading a failure to zero.
func (h *StatsHandler) count(name string, n int, err error) int {
	if err != nil {
		h.logger().Warn("stats query failed", "query", name, "error", err)
		return 0
	}
	return n
}

// Dashboard returns the aggregate counts and recent activities for the
// landing page.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	since := repo.LocalMidnight(time.Now())

	total, err := h.Stats.CountResources(ctx, "")
	totalResources := h.count("total_resources", total, err)

	avail, err := h.Stats.CountResources(ctx, models.StatusAvailable)
	availableResources := h.count("available_resources", avail, err)

	users, err := h.Stats.CountUsers(ctx)
	totalUsers := h.count("total_users", users, err)

	accesses, err := h.Stats.CountAccessLogsSince(ctx, since, "")
	todayAccesses := h.count("today_accesses", accesses, err)

	byType := h.resourcesByType(ctx)

	activities, err := h.Activities.ListRecent(ctx, 5, 0)
	if err != nil {
		h.logger().Warn("stats query failed", "query", "recent_activities", "error", err)
		activities = nil
	}
	if activities == nil {
		activities = []models.ActivityDetail{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_resources":     totalResources,
		"available_resources": availableResources,
		"total_users":         totalUsers,
		"today_accesses":      todayAccesses,
		"resources_by_type":   byType,
		"recent_activities":   activities,
	})
}

// Security returns today's access counts, active area count, recent logs,
// and the area list for the security page.
func (h *StatsHandler) Security(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	since := repo.LocalMidnight(time.Now())

	logsToday, err := h.Stats.CountAccessLogsSince(ctx, since, "")
	todayLogs := h.count("today_logs", logsToday, err)

	denied, err := h.Stats.CountAccessLogsSince(ctx, since, models.ActionDenied)
	deniedToday := h.count("denied_today", denied, err)

	active, err := h.Stats.CountActiveAreas(ctx)
	activeAreas := h.count("active_areas", active, err)

	recentLogs, err := h.Logs.ListRecent(ctx, 10, 0)
	if err != nil {
		h.logger().Warn("stats query failed", "query", "recent_logs", "error", err)
		recentLogs = nil
	}
	if recentLogs == nil {
		recentLogs = []models.AccessLogDetail{}
	}

	areas, err := h.Areas.List(ctx)
	if err != nil {
		h.logger().Warn("stats query failed", "query", "areas", "error", err)
		areas = nil
	}
	if areas == nil {
		areas = []models.RestrictedArea{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"today_logs":   todayLogs,
		"denied_today": deniedToday,
		"active_areas": activeAreas,
		"recent_logs":  recentLogs,
		"areas":        areas,
	})
}

func (h *StatsHandler) resourcesByType(ctx context.Context) map[models.ResourceType]int {
	byType, err := h.Stats.CountResourcesByType(ctx)
	if err != nil {
		h.logger().Warn("stats query failed", "query", "resources_by_type", "error", err)
		byType = make(map[models.ResourceType]int, len(models.ResourceTypes))
		for _, t := range models.ResourceTypes {
			byType[t] = 0
		}
	}
	return byType
}
