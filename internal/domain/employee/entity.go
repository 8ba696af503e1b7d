package employee

import "time"

// Employee is the directory view of a user: enough to address attendance
// records and resolve the performance-allowance base. Directory CRUD lives
// outside this service.
type Employee struct {
	Guid         string
	FullName     string
	Email        string
	DepartmentID *string
	JobGrade     *int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
