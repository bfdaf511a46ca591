package scheduler

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rfalmeida/facility-control/internal/access"
	"github.com/rfalmeida/facility-control/internal/models"
	"github.com/rfalmeida/facility-control/internal/repo"
)

func TestSummary_Run(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	today := repo.LocalMidnight(time.Now())
	yesterday := today.AddDate(0, 0, -1)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM access_logs WHERE ts >= \$1 AND ts < \$2`).
		WithArgs(yesterday, today).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM access_logs WHERE ts >= \$1 AND ts < \$2 AND action = \$3`).
		WithArgs(yesterday, today, "denied").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	wantDesc := fmt.Sprintf("Daily security summary for %s: 17 access events, 3 denied", yesterday.Format("2006-01-02"))
	mock.ExpectQuery(`INSERT INTO activities`).
		WithArgs(42, nil, models.ActivityDailySummary, wantDesc).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "resource_id", "action_type", "description", "ts"}).
			AddRow(1, 42, nil, models.ActivityDailySummary, wantDesc, time.Now()))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := &Summary{
		Stats:   repo.NewStatsRepo(db),
		Auditor: access.NewAuditor(repo.NewActivityRepo(db), logger),
		ActorID: 42,
		Logger:  logger,
	}
	s.Run()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestSummary_Run_CountFailureSkipsActivity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM access_logs WHERE ts >= \$1 AND ts < \$2`).
		WillReturnError(fmt.Errorf("connection refused"))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := &Summary{
		Stats:   repo.NewStatsRepo(db),
		Auditor: access.NewAuditor(repo.NewActivityRepo(db), logger),
		ActorID: 42,
		Logger:  logger,
	}
	s.Run()

	// No activity insert may be attempted when the counts are unknown.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestSummary_Start_InvalidCron(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := &Summary{
		Stats:   repo.NewStatsRepo(db),
		Auditor: access.NewAuditor(repo.NewActivityRepo(db), logger),
		ActorID: 42,
		Logger:  logger,
	}
	if _, err := s.Start("not a cron expr"); err == nil {
		t.Error("expected an error for an invalid cron expression")
	}
}

func TestSummary_Start(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := &Summary{
		Stats:   repo.NewStatsRepo(db),
		Auditor: access.NewAuditor(repo.NewActivityRepo(db), logger),
		ActorID: 42,
		Logger:  logger,
	}
	c, err := s.Start("5 0 * * *")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.Stop()
}
