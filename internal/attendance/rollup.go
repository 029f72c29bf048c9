package attendance

import (
	"context"
	"database/sql"
	"time"

	"smg-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Rollup builds the month-to-date attendance summary of every active employee.
type Rollup struct {
	db     *sql.DB
	repo   Repository
	loc    *time.Location
	logger *zap.Logger
}

func NewRollup(db *sql.DB, repo Repository, loc *time.Location, logger ...*zap.Logger) *Rollup {
	l := zap.L().Named("attendance.rollup")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.rollup")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Rollup{db: db, repo: repo, loc: loc, logger: l}
}

// MonthBounds returns the month key of now and the first instant of that
// month, both in loc.
func MonthBounds(now time.Time, loc *time.Location) (string, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return local.Format(MonthLayout), start
}

// Summarize tallies records into the summary for userID and month. Missing
// hours count as zero.
func Summarize(userID uuid.UUID, month string, records []Record, at time.Time) MonthlySummary {
	s := MonthlySummary{
		UserID:    userID,
		Month:     month,
		TotalDays: len(records),
		UpdatedAt: at,
	}
	for _, rec := range records {
		switch rec.Status {
		case StatusPresent:
			s.PresentDays++
		case StatusAbsent:
			s.AbsentDays++
		case StatusHalfDay:
			s.HalfDays++
		case StatusLeave:
			s.LeaveDays++
		}
		if rec.WorkHours != nil {
			s.TotalWorkHours += *rec.WorkHours
		}
		if rec.OvertimeHours != nil {
			s.OvertimeHours += *rec.OvertimeHours
		}
	}
	return s
}

// Run computes and merges the summaries for the month containing now. All
// summaries are written in one transaction.
func (r *Rollup) Run(ctx context.Context, now time.Time) (RollupResult, error) {
	log := contextutil.GetLogger(ctx, r.logger)
	month, start := MonthBounds(now, r.loc)

	userIDs, err := r.repo.ActiveEmployeeIDs(ctx)
	if err != nil {
		log.Error("attendance rollup list employees failed", zap.Error(err))
		return RollupResult{}, err
	}

	records, err := r.repo.FindRecordsBetween(ctx, userIDs, start, now)
	if err != nil {
		log.Error("attendance rollup load records failed", zap.String("month", month), zap.Error(err))
		return RollupResult{}, err
	}
	byUser := make(map[uuid.UUID][]Record, len(userIDs))
	for _, rec := range records {
		byUser[rec.UserID] = append(byUser[rec.UserID], rec)
	}

	at := now.UTC()
	summaries := make([]MonthlySummary, 0, len(userIDs))
	for _, id := range userIDs {
		summaries = append(summaries, Summarize(id, month, byUser[id], at))
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("attendance rollup begin tx failed", zap.Error(err))
		return RollupResult{}, err
	}
	defer tx.Rollback()

	if err := r.repo.WithTx(tx).UpsertSummaries(ctx, summaries); err != nil {
		log.Error("attendance rollup upsert failed", zap.String("month", month), zap.Error(err))
		return RollupResult{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("attendance rollup commit failed", zap.String("month", month), zap.Error(err))
		return RollupResult{}, err
	}

	log.Info("attendance rollup success",
		zap.String("month", month),
		zap.Int("users", len(summaries)),
		zap.Int("records", len(records)),
	)
	return RollupResult{Month: month, Users: len(summaries)}, nil
}
