package employee

import "context"

// EmployeeService defines business logic for roster operations
type EmployeeService interface {
	// ListEmployees returns the full roster in store order
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// CreateEmployee creates a new employee; the store assigns the id
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee merges the supplied fields onto the existing record
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee; deleting a missing id fails with ErrEmployeeNotFound
	DeleteEmployee(ctx context.Context, id string) error
}
