package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffdesk/staffdesk/internal/domain/employee"
	"github.com/staffdesk/staffdesk/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// List implements employee.EmployeeRepository. Rows come back in insertion
// order so the roster renders the way records were added.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	query := `
		SELECT id, name, email, position, department, created_at, updated_at
		FROM employees
		ORDER BY created_at, id
	`

	rows, err := e.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.Name, &emp.Email, &emp.Position, &emp.Department,
			&emp.CreatedAt, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	query := `
		SELECT id, name, email, position, department, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := e.db.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.Name, &emp.Email, &emp.Position, &emp.Department,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}

	return emp, nil
}

// Create implements employee.EmployeeRepository. The store assigns the id.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	query := `
		INSERT INTO employees (id, name, email, position, department, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, name, email, position, department, created_at, updated_at
	`

	id := uuid.NewString()

	var emp employee.Employee
	err := e.db.QueryRow(ctx, query,
		id, newEmployee.Name, newEmployee.Email, newEmployee.Position, newEmployee.Department,
	).Scan(
		&emp.ID, &emp.Name, &emp.Email, &emp.Position, &emp.Department,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, id string, req employee.Employee) (employee.Employee, error) {
	query := `
		UPDATE employees
		SET name = $1, email = $2, position = $3, department = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, name, email, position, department, created_at, updated_at
	`

	var emp employee.Employee
	err := e.db.QueryRow(ctx, query,
		req.Name, req.Email, req.Position, req.Department, id,
	).Scan(
		&emp.ID, &emp.Name, &emp.Email, &emp.Position, &emp.Department,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee %s: %w", id, err)
	}

	return emp, nil
}

// Delete implements employee.EmployeeRepository. Deleting an id that is
// already gone reports ErrEmployeeNotFound rather than succeeding silently.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM employees WHERE id = $1`

	tag, err := e.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
