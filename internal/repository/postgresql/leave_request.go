package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/leave"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

// StatusForDate implements leave.LeaveRepository.
func (l *leaveRepository) StatusForDate(ctx context.Context, employeeID string, date time.Time) (leave.Status, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT leave_type
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = 'APPROVED'
		  AND start_date <= $2
		  AND end_date >= $2
		LIMIT 1
	`

	var leaveType leave.LeaveType
	err := q.QueryRow(ctx, query, employeeID, date).Scan(&leaveType)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Status{}, nil
		}
		return leave.Status{}, fmt.Errorf("failed to get leave status: %w", err)
	}

	return leave.Status{OnLeave: true, LeaveType: leaveType}, nil
}

// EmployeeIDsOnLeave implements leave.LeaveRepository.
func (l *leaveRepository) EmployeeIDsOnLeave(ctx context.Context, date time.Time) (map[string]struct{}, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT DISTINCT employee_id
		FROM leave_requests
		WHERE status = 'APPROVED'
		  AND start_date <= $1
		  AND end_date >= $1
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees on leave: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave rows: %w", err)
	}

	return ids, nil
}
