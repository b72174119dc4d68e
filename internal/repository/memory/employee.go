// Package memory provides an in-memory employee store. It backs development
// deployments of the API where a PostgreSQL instance is not available and
// keeps the same repository contract as the postgresql implementation.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/staffdesk/staffdesk/internal/domain/employee"
)

type employeeRepositoryImpl struct {
	mu      sync.RWMutex
	byID    map[string]employee.Employee
	order   []string
	nowFunc func() time.Time
}

func NewEmployeeRepository() employee.EmployeeRepository {
	return &employeeRepositoryImpl{
		byID:    make(map[string]employee.Employee),
		nowFunc: time.Now,
	}
}

// NewSeededEmployeeRepository returns a repository pre-populated with the
// default roster used by development deployments.
func NewSeededEmployeeRepository() employee.EmployeeRepository {
	repo := &employeeRepositoryImpl{
		byID:    make(map[string]employee.Employee),
		nowFunc: time.Now,
	}
	for _, emp := range SeedRoster() {
		repo.insert(emp)
	}
	return repo
}

// SeedRoster returns the default five-record roster.
func SeedRoster() []employee.Employee {
	return []employee.Employee{
		{Name: "Alice Johnson", Email: "alice.johnson@example.com", Position: "Software Engineer", Department: "Engineering"},
		{Name: "Bob Williams", Email: "bob.williams@example.com", Position: "Product Manager", Department: "Product"},
		{Name: "Charlie Brown", Email: "charlie.brown@example.com", Position: "UX Designer", Department: "Design"},
		{Name: "Diana Miller", Email: "diana.miller@example.com", Position: "QA Engineer", Department: "Engineering"},
		{Name: "Ethan Davis", Email: "ethan.davis@example.com", Position: "HR Specialist", Department: "Human Resources"},
	}
}

func (e *employeeRepositoryImpl) insert(emp employee.Employee) employee.Employee {
	now := e.nowFunc()
	emp.ID = uuid.NewString()
	emp.CreatedAt = now
	emp.UpdatedAt = now
	e.byID[emp.ID] = emp
	e.order = append(e.order, emp.ID)
	return emp
}

// List implements employee.EmployeeRepository. Order is insertion order.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	employees := make([]employee.Employee, 0, len(e.order))
	for _, id := range e.order {
		employees = append(employees, e.byID[id])
	}
	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if err := ctx.Err(); err != nil {
		return employee.Employee{}, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	emp, ok := e.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	if err := ctx.Err(); err != nil {
		return employee.Employee{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.insert(newEmployee), nil
}

// Update implements employee.EmployeeRepository. The id is immutable; the
// descriptive fields are overwritten from the supplied record.
func (e *employeeRepositoryImpl) Update(ctx context.Context, id string, req employee.Employee) (employee.Employee, error) {
	if err := ctx.Err(); err != nil {
		return employee.Employee{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	existing, ok := e.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	existing.Name = req.Name
	existing.Email = req.Email
	existing.Position = req.Position
	existing.Department = req.Department
	existing.UpdatedAt = e.nowFunc()
	e.byID[id] = existing

	return existing, nil
}

// Delete implements employee.EmployeeRepository. A repeat delete of the same
// id fails with ErrEmployeeNotFound.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.byID[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(e.byID, id)
	for i, existing := range e.order {
		if existing == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return nil
}
