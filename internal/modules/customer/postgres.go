package customer

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const customerColumns = `id,name,email,phone,gender,birth_date,habit,created_at,updated_at`

func (r *postgresRepo) Create(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, phone, gender, birth_date, habit)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.Name, c.Email, c.Phone, c.Gender, c.BirthDate, c.Habit)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Customer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanCustomer(r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id=$1`, uid))
}

func (r *postgresRepo) List(ctx context.Context) ([]*Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var customers []*Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE customers SET name=$1, email=$2, phone=$3, gender=$4, birth_date=$5, habit=$6, updated_at=$7
		WHERE id=$8`,
		c.Name, c.Email, c.Phone, c.Gender, c.BirthDate, c.Habit, time.Now(), c.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM customers WHERE id=$1`, uid)
	return err
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanCustomer(row rowScanner) (*Customer, error) {
	c := &Customer{}
	var gender sql.NullString
	var birthDate sql.NullTime
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &gender, &birthDate,
		&c.Habit, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if gender.Valid {
		c.Gender = Gender(gender.String)
	}
	if birthDate.Valid {
		bd := birthDate.Time
		c.BirthDate = &bd
	}
	return c, nil
}
