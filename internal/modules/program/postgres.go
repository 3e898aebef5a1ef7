package program

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const programColumns = `id,industry_id,title,description,rules,reward,starts_at,ends_at,metric,target_sku,target_category,target_value,min_tier,tags,created_at,updated_at`

func (r *postgresRepo) CreateProgram(ctx context.Context, p *Program) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO programs
		  (id, industry_id, title, description, rules, reward, starts_at, ends_at,
		   metric, target_sku, target_category, target_value, min_tier, tags)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		p.ID, p.IndustryID, p.Title, p.Description, p.Rules, p.Reward,
		p.StartsAt, p.EndsAt, p.Metric, p.TargetSKU, p.TargetCategory,
		p.TargetValue, p.MinTier, pq.Array(p.Tags))
	return err
}

func (r *postgresRepo) GetProgram(ctx context.Context, id string) (*Program, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanProgram(r.db.QueryRowContext(ctx,
		`SELECT `+programColumns+` FROM programs WHERE id=$1`, uid))
}

func (r *postgresRepo) ListByIndustry(ctx context.Context, industryID string) ([]*Program, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+programColumns+` FROM programs WHERE industry_id=$1 ORDER BY starts_at DESC`,
		industryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var programs []*Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

func (r *postgresRepo) DeleteProgram(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM programs WHERE id=$1`, uid)
	return err
}

func (r *postgresRepo) CreateSubscription(ctx context.Context, sub *Subscription) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO program_subscriptions (id, program_id, retailer_id)
		VALUES ($1,$2,$3)`,
		sub.ID, sub.ProgramID, sub.RetailerID)
	return err
}

func (r *postgresRepo) GetSubscription(ctx context.Context, programID, retailerID string) (*Subscription, error) {
	sub := &Subscription{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id,program_id,retailer_id,created_at FROM program_subscriptions
		WHERE program_id=$1 AND retailer_id=$2`,
		programID, retailerID).
		Scan(&sub.ID, &sub.ProgramID, &sub.RetailerID, &sub.CreatedAt)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *postgresRepo) ListSubscriptions(ctx context.Context, programID string) ([]*Subscription, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,program_id,retailer_id,created_at FROM program_subscriptions
		WHERE program_id=$1 ORDER BY created_at ASC`, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var subs []*Subscription
	for rows.Next() {
		sub := &Subscription{}
		if err := rows.Scan(&sub.ID, &sub.ProgramID, &sub.RetailerID, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanProgram(row rowScanner) (*Program, error) {
	p := &Program{}
	err := row.Scan(&p.ID, &p.IndustryID, &p.Title, &p.Description, &p.Rules,
		&p.Reward, &p.StartsAt, &p.EndsAt, &p.Metric, &p.TargetSKU,
		&p.TargetCategory, &p.TargetValue, &p.MinTier, pq.Array(&p.Tags),
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}
