package actor

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const actorColumns = `id,kind,name,trade_name,tax_id,email,phone,street,city,state,zip_code,created_at,updated_at`

func (r *postgresRepo) Create(ctx context.Context, a *Actor) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO actors
		  (id, kind, name, trade_name, tax_id, email, phone, street, city, state, zip_code)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.Kind, a.Name, a.TradeName, a.TaxID, a.Email, a.Phone,
		a.Street, a.City, a.State, a.ZipCode)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Actor, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanActor(r.db.QueryRowContext(ctx,
		`SELECT `+actorColumns+` FROM actors WHERE id=$1`, uid))
}

func (r *postgresRepo) ListByKind(ctx context.Context, kind Kind) ([]*Actor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+actorColumns+` FROM actors WHERE kind=$1 ORDER BY name ASC`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var actors []*Actor
	for rows.Next() {
		a, err := scanActor(rows)
		if err != nil {
			return nil, err
		}
		actors = append(actors, a)
	}
	return actors, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, a *Actor) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE actors SET name=$1, trade_name=$2, tax_id=$3, email=$4, phone=$5,
		  street=$6, city=$7, state=$8, zip_code=$9, updated_at=$10
		WHERE id=$11`,
		a.Name, a.TradeName, a.TaxID, a.Email, a.Phone,
		a.Street, a.City, a.State, a.ZipCode, time.Now(), a.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM actors WHERE id=$1`, uid)
	return err
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanActor(row rowScanner) (*Actor, error) {
	a := &Actor{}
	err := row.Scan(&a.ID, &a.Kind, &a.Name, &a.TradeName, &a.TaxID, &a.Email,
		&a.Phone, &a.Street, &a.City, &a.State, &a.ZipCode,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}
