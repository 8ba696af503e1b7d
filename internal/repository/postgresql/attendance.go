package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.guid, a.employee_id, a.department_id, a.date,
	a.check_in_time, a.check_out_time, a.check_in_notes, a.check_out_notes,
	a.late_minutes, a.work_hours, a.status, a.created_at, a.updated_at,
	d.name AS department_name
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.Guid, &att.EmployeeID, &att.DepartmentID, &att.Date,
		&att.CheckInTime, &att.CheckOutTime, &att.CheckInNotes, &att.CheckOutNotes,
		&att.LateMinutes, &att.WorkHours, &att.Status, &att.CreatedAt, &att.UpdatedAt,
		&att.DepartmentName,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			guid, employee_id, department_id, date,
			check_in_time, check_out_time, check_in_notes, check_out_notes,
			late_minutes, work_hours, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.Guid,
		newAttendance.EmployeeID,
		newAttendance.DepartmentID,
		newAttendance.Date,
		newAttendance.CheckInTime,
		newAttendance.CheckOutTime,
		newAttendance.CheckInNotes,
		newAttendance.CheckOutNotes,
		newAttendance.LateMinutes,
		newAttendance.WorkHours,
		newAttendance.Status,
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByGuid implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByGuid(ctx context.Context, guid string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN departments d ON d.guid = a.department_id
		WHERE a.guid = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, guid))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN departments d ON d.guid = a.department_id
		WHERE a.employee_id = $1
		  AND a.date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			check_in_time = $2,
			check_out_time = $3,
			check_in_notes = $4,
			check_out_notes = $5,
			late_minutes = $6,
			work_hours = $7,
			status = $8,
			updated_at = NOW()
		WHERE guid = $1
	`

	tag, err := q.Exec(ctx, query,
		att.Guid,
		att.CheckInTime,
		att.CheckOutTime,
		att.CheckInNotes,
		att.CheckOutNotes,
		att.LateMinutes,
		att.WorkHours,
		att.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN departments d ON d.guid = a.department_id
		WHERE a.date = $1
		ORDER BY a.employee_id
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}

	return result, nil
}
