package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/user"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
)

const employeeColumns = `
	id, employee_code, name, role, manager_id, department_id,
	office_location_id, work_shift_id, date_of_joining, is_active`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		emp  employee.Employee
		role string
	)
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.Name, &role, &emp.ManagerID, &emp.DepartmentID,
		&emp.OfficeLocationID, &emp.WorkShiftID, &emp.DateOfJoining, &emp.IsActive,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	emp.Role = user.Role(role)
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	ctx, cancel := e.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// ListByScope implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByScope(ctx context.Context, scope employee.Scope) ([]employee.Employee, error) {
	ctx, cancel := e.db.WithTimeout(ctx)
	defer cancel()
	q := GetQuerier(ctx, e.db)

	where := "is_active = TRUE"
	args := []interface{}{}
	argIdx := 1

	if scope.EmployeeID != nil {
		where += fmt.Sprintf(" AND id = $%d", argIdx)
		args = append(args, *scope.EmployeeID)
		argIdx++
	}

	if scope.ManagerID != nil {
		where += fmt.Sprintf(" AND manager_id = $%d", argIdx)
		args = append(args, *scope.ManagerID)
		argIdx++
	}

	if scope.DepartmentID != nil {
		where += fmt.Sprintf(" AND department_id = $%d", argIdx)
		args = append(args, *scope.DepartmentID)
	}

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + where + ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}
