package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type violationRepository struct {
	db *database.DB
}

func NewViolationRepository(db *database.DB) attendance.ViolationRepository {
	return &violationRepository{db: db}
}

// Create implements attendance.ViolationRepository. The table carries a
// unique constraint on (attendance_id, type), so a concurrent duplicate
// degrades to a no-op and the existing row is returned.
func (v *violationRepository) Create(ctx context.Context, violation attendance.Violation) (attendance.Violation, error) {
	q := GetQuerier(ctx, v.db)

	query := `
		INSERT INTO attendance_violations (
			guid, attendance_id, type, source,
			penalty_percent, base_amount, penalty_amount,
			occurred_at, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (attendance_id, type) DO NOTHING
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		violation.Guid,
		violation.AttendanceID,
		violation.Type,
		violation.Source,
		violation.PenaltyPercent,
		violation.BaseAmount,
		violation.PenaltyAmount,
		violation.OccurredAt,
		violation.Notes,
	).Scan(&violation.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return v.getByAttendanceAndType(ctx, violation.AttendanceID, violation.Type)
	}
	if err != nil {
		return attendance.Violation{}, fmt.Errorf("failed to create violation: %w", err)
	}

	return violation, nil
}

func (v *violationRepository) getByAttendanceAndType(ctx context.Context, attendanceID string, violationType attendance.ViolationType) (attendance.Violation, error) {
	q := GetQuerier(ctx, v.db)

	query := `
		SELECT guid, attendance_id, type, source,
			   penalty_percent, base_amount, penalty_amount,
			   occurred_at, notes, created_at
		FROM attendance_violations
		WHERE attendance_id = $1 AND type = $2
	`

	var violation attendance.Violation
	err := q.QueryRow(ctx, query, attendanceID, violationType).Scan(
		&violation.Guid, &violation.AttendanceID, &violation.Type, &violation.Source,
		&violation.PenaltyPercent, &violation.BaseAmount, &violation.PenaltyAmount,
		&violation.OccurredAt, &violation.Notes, &violation.CreatedAt,
	)
	if err != nil {
		return attendance.Violation{}, fmt.Errorf("failed to get violation: %w", err)
	}

	return violation, nil
}

// ExistsByAttendanceAndType implements attendance.ViolationRepository.
func (v *violationRepository) ExistsByAttendanceAndType(ctx context.Context, attendanceID string, violationType attendance.ViolationType) (bool, error) {
	q := GetQuerier(ctx, v.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_violations
			WHERE attendance_id = $1 AND type = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, attendanceID, violationType).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check violation existence: %w", err)
	}

	return exists, nil
}

// DeleteByAttendanceAndType implements attendance.ViolationRepository.
func (v *violationRepository) DeleteByAttendanceAndType(ctx context.Context, attendanceID string, violationType attendance.ViolationType) (int64, error) {
	q := GetQuerier(ctx, v.db)

	query := `
		DELETE FROM attendance_violations
		WHERE attendance_id = $1 AND type = $2
	`

	tag, err := q.Exec(ctx, query, attendanceID, violationType)
	if err != nil {
		return 0, fmt.Errorf("failed to delete violations: %w", err)
	}

	return tag.RowsAffected(), nil
}

// CountByAttendance implements attendance.ViolationRepository.
func (v *violationRepository) CountByAttendance(ctx context.Context, attendanceID string) (int64, error) {
	q := GetQuerier(ctx, v.db)

	var count int64
	query := `SELECT COUNT(*) FROM attendance_violations WHERE attendance_id = $1`
	if err := q.QueryRow(ctx, query, attendanceID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count violations: %w", err)
	}

	return count, nil
}

// ListByAttendance implements attendance.ViolationRepository.
func (v *violationRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]attendance.Violation, error) {
	q := GetQuerier(ctx, v.db)

	query := `
		SELECT guid, attendance_id, type, source,
			   penalty_percent, base_amount, penalty_amount,
			   occurred_at, notes, created_at
		FROM attendance_violations
		WHERE attendance_id = $1
		ORDER BY occurred_at
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list violations: %w", err)
	}
	defer rows.Close()

	var result []attendance.Violation
	for rows.Next() {
		var violation attendance.Violation
		if err := rows.Scan(
			&violation.Guid, &violation.AttendanceID, &violation.Type, &violation.Source,
			&violation.PenaltyPercent, &violation.BaseAmount, &violation.PenaltyAmount,
			&violation.OccurredAt, &violation.Notes, &violation.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		result = append(result, violation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate violation rows: %w", err)
	}

	return result, nil
}

// MonthlyPenaltySummary implements attendance.ViolationRepository.
func (v *violationRepository) MonthlyPenaltySummary(ctx context.Context, employeeID string, year int, month time.Month) (attendance.PenaltySummary, error) {
	q := GetQuerier(ctx, v.db)

	query := `
		SELECT COUNT(v.guid), COALESCE(SUM(v.penalty_amount), 0)
		FROM attendance_violations v
		JOIN attendances a ON a.guid = v.attendance_id
		WHERE a.employee_id = $1
		  AND EXTRACT(YEAR FROM a.date) = $2
		  AND EXTRACT(MONTH FROM a.date) = $3
	`

	summary := attendance.PenaltySummary{
		EmployeeID: employeeID,
		Year:       year,
		Month:      int(month),
	}
	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, year, int(month)).Scan(&summary.ViolationCount, &total); err != nil {
		return attendance.PenaltySummary{}, fmt.Errorf("failed to summarize penalties: %w", err)
	}
	summary.TotalPenalty = total

	return summary, nil
}
