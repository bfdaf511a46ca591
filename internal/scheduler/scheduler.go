package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rfalmeida/facility-control/internal/access"
	"github.com/rfalmeida/facility-control/internal/models"
	"github.com/rfalmeida/facility-control/internal/repo"
	"github.com/robfig/cron/v3"
)

// Summary runs the daily security summary job: at each cron tick it counts
// the previous day's access events and appends one activity row attributed
// to the system actor.
type Summary struct {
	Stats   *repo.StatsRepo
	Auditor *access.Auditor
	ActorID int
	Logger  *slog.Logger
}

// Start registers the job under cronExpr and starts the cron runner.
// Returns the runner so the caller can Stop it on shutdown.
func (s *Summary) Start(cronExpr string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(cronExpr, s.Run); err != nil {
		return nil, fmt.Errorf("invalid summary cron %q: %w", cronExpr, err)
	}
	c.Start()
	s.Logger.Info("daily summary scheduled", "cron", cronExpr)
	return c, nil
}

// Run produces one summary for the day before the current one. Exposed so
// it can be triggered directly in tests.
func (s *Summary) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := repo.LocalMidnight(time.Now())
	yesterday := today.AddDate(0, 0, -1)

	total, err := s.Stats.CountAccessLogsBetween(ctx, yesterday, today, "")
	if err != nil {
		s.Logger.Error("daily summary: count access logs", "error", err)
		return
	}
	denied, err := s.Stats.CountAccessLogsBetween(ctx, yesterday, today, models.ActionDenied)
	if err != nil {
		s.Logger.Error("daily summary: count denials", "error", err)
		return
	}

	desc := fmt.Sprintf("Daily security summary for %s: %d access events, %d denied",
		yesterday.Format("2006-01-02"), total, denied)
	s.Auditor.Record(ctx, s.ActorID, models.ActivityDailySummary, desc, nil)
	s.Logger.Info("daily summary recorded", "day", yesterday.Format("2006-01-02"), "total", total, "denied", denied)
}
