package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/hotel-manager/internal/model"
)

const employeeColumns = `id, first_name, last_name, email, phone, position, department, hire_date, salary, is_active, created_at, updated_at`

// EmployeeRepo provides CRUD over the employees table.
type EmployeeRepo struct {
	db *sql.DB
}

func NewEmployeeRepo(db *sql.DB) *EmployeeRepo { return &EmployeeRepo{db: db} }

func scanEmployee(s rowScanner) (model.Employee, error) {
	var e model.Employee
	err := s.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.Position,
		&e.Department, &e.HireDate, &e.Salary, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id uint64) (model.Employee, error) {
	e, err := scanEmployee(r.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id))
	if err != nil {
		return model.Employee{}, notFound(err, ErrEmployeeNotFound)
	}
	return e, nil
}

func (r *EmployeeRepo) List(ctx context.Context, activeOnly bool, p Page) ([]model.Employee, error) {
	p = p.normalized()
	q := `SELECT ` + employeeColumns + ` FROM employees`
	if activeOnly {
		q += ` WHERE is_active = TRUE`
	}
	q += ` ORDER BY last_name, first_name, id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, p.Limit, p.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EmployeeRepo) Create(ctx context.Context, e *model.Employee) error {
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (first_name, last_name, email, phone, position, department, hire_date, salary, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.FirstName, e.LastName, e.Email, e.Phone, e.Position, e.Department, e.HireDate, e.Salary, e.IsActive)
	if err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	id, err := insertedID(res)
	if err != nil {
		return err
	}
	saved, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*e = saved
	return nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e *model.Employee) error {
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	res, err := r.db.ExecContext(ctx,
		`UPDATE employees
		 SET first_name = ?, last_name = ?, email = ?, phone = ?, position = ?, department = ?,
		     hire_date = ?, salary = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		e.FirstName, e.LastName, e.Email, e.Phone, e.Position, e.Department, e.HireDate, e.Salary, e.IsActive, e.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	if err := affectedOrMissing(res, ErrEmployeeNotFound); err != nil {
		return err
	}
	saved, err := r.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	*e = saved
	return nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrMissing(res, ErrEmployeeNotFound)
}
