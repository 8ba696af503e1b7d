package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/employee"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT guid, full_name, email, department_id, job_grade, is_active,
			   created_at, updated_at
		FROM employees
		WHERE guid = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.Guid, &emp.FullName, &emp.Email, &emp.DepartmentID, &emp.JobGrade,
		&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// ActiveEmployeeIDs implements employee.EmployeeRepository.
func (e *employeeRepository) ActiveEmployeeIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT guid FROM employees WHERE is_active = TRUE ORDER BY guid`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee rows: %w", err)
	}

	return ids, nil
}

// PrimaryDepartmentID implements employee.EmployeeRepository.
func (e *employeeRepository) PrimaryDepartmentID(ctx context.Context, employeeID string) (*string, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT department_id FROM employees WHERE guid = $1`

	var departmentID *string
	err := q.QueryRow(ctx, query, employeeID).Scan(&departmentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	return departmentID, nil
}

// AllowanceBase implements employee.EmployeeRepository. The join against the
// allowance reference table resolves the employee's job grade; a missing
// grade or reference row yields zero, not an error.
func (e *employeeRepository) AllowanceBase(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT COALESCE(ar.base_amount, 0)
		FROM employees e
		LEFT JOIN allowance_references ar ON ar.job_grade = e.job_grade
		WHERE e.guid = $1
	`

	var base decimal.Decimal
	err := q.QueryRow(ctx, query, employeeID).Scan(&base)
	if err != nil {
		if err == pgx.ErrNoRows {
			return decimal.Zero, employee.ErrEmployeeNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to get allowance base: %w", err)
	}

	return base, nil
}
