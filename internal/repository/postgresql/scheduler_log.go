package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/scheduler"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/database"
)

type schedulerLogRepository struct {
	db *database.DB
}

func NewSchedulerLogRepository(db *database.DB) scheduler.LogRepository {
	return &schedulerLogRepository{db: db}
}

// Create implements scheduler.LogRepository.
func (s *schedulerLogRepository) Create(ctx context.Context, log scheduler.ExecutionLog) (scheduler.ExecutionLog, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO scheduler_execution_logs (
			job_name, scheduled_at, executed_at, status, message
		) VALUES (
			$1, $2, $3, $4, $5
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		log.JobName,
		log.ScheduledAt,
		log.ExecutedAt,
		log.Status,
		log.Message,
	).Scan(&log.ID, &log.CreatedAt)

	if err != nil {
		return scheduler.ExecutionLog{}, fmt.Errorf("failed to create execution log: %w", err)
	}

	return log, nil
}

// Update implements scheduler.LogRepository.
func (s *schedulerLogRepository) Update(ctx context.Context, log scheduler.ExecutionLog) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE scheduler_execution_logs SET
			executed_at = $2,
			status = $3,
			message = $4
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, log.ID, log.ExecutedAt, log.Status, log.Message)
	if err != nil {
		return fmt.Errorf("failed to update execution log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scheduler.ErrLogNotFound
	}

	return nil
}

// FindCompleted implements scheduler.LogRepository.
func (s *schedulerLogRepository) FindCompleted(ctx context.Context, jobName string, targetDate time.Time) (*scheduler.ExecutionLog, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, job_name, scheduled_at, executed_at, status, message, created_at
		FROM scheduler_execution_logs
		WHERE job_name = $1
		  AND status IN ('SUCCESS', 'FAILED')
		  AND scheduled_at >= $2
		  AND scheduled_at < $3
		ORDER BY id DESC
		LIMIT 1
	`

	dayStart := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var log scheduler.ExecutionLog
	err := q.QueryRow(ctx, query, jobName, dayStart, dayEnd).Scan(
		&log.ID, &log.JobName, &log.ScheduledAt, &log.ExecutedAt,
		&log.Status, &log.Message, &log.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find completed run: %w", err)
	}

	return &log, nil
}

// GetByID implements scheduler.LogRepository.
func (s *schedulerLogRepository) GetByID(ctx context.Context, id int64) (scheduler.ExecutionLog, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, job_name, scheduled_at, executed_at, status, message, created_at
		FROM scheduler_execution_logs
		WHERE id = $1
	`

	var log scheduler.ExecutionLog
	err := q.QueryRow(ctx, query, id).Scan(
		&log.ID, &log.JobName, &log.ScheduledAt, &log.ExecutedAt,
		&log.Status, &log.Message, &log.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return scheduler.ExecutionLog{}, scheduler.ErrLogNotFound
		}
		return scheduler.ExecutionLog{}, fmt.Errorf("failed to get execution log: %w", err)
	}

	return log, nil
}

// List implements scheduler.LogRepository.
func (s *schedulerLogRepository) List(ctx context.Context, filter scheduler.LogFilter) ([]scheduler.ExecutionLog, int64, error) {
	q := GetQuerier(ctx, s.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.JobName != "" {
		conditions = append(conditions, fmt.Sprintf("job_name = $%d", argIdx))
		args = append(args, filter.JobName)
		argIdx++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM scheduler_execution_logs WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count execution logs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, job_name, scheduled_at, executed_at, status, message, created_at
		FROM scheduler_execution_logs
		WHERE %s
		ORDER BY id DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list execution logs: %w", err)
	}
	defer rows.Close()

	var logs []scheduler.ExecutionLog
	for rows.Next() {
		var log scheduler.ExecutionLog
		if err := rows.Scan(
			&log.ID, &log.JobName, &log.ScheduledAt, &log.ExecutedAt,
			&log.Status, &log.Message, &log.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan execution log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate execution log rows: %w", err)
	}

	return logs, total, nil
}
