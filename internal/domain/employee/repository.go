package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// ActiveEmployeeIDs lists every active employee; the cutoff jobs walk
	// this set
	ActiveEmployeeIDs(ctx context.Context) ([]string, error)

	// PrimaryDepartmentID returns nil when the employee has no department
	PrimaryDepartmentID(ctx context.Context, employeeID string) (*string, error)

	// AllowanceBase resolves the employee's job grade against the allowance
	// reference table. Returns zero when the employee has no grade or the
	// grade has no reference row.
	AllowanceBase(ctx context.Context, employeeID string) (decimal.Decimal, error)
}
