package inventory

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) BatchRepository { return &postgresRepo{db: db} }

const batchColumns = `id,retailer_id,product_id,quantity,unit_cost,sale_price,expires_at,created_at,updated_at`

func (r *postgresRepo) Create(ctx context.Context, b *Batch) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory_batches
		  (id, retailer_id, product_id, quantity, unit_cost, sale_price, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		b.ID, b.RetailerID, b.ProductID, b.Quantity, b.UnitCost, b.SalePrice, b.ExpiresAt)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Batch, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanBatch(r.db.QueryRowContext(ctx,
		`SELECT `+batchColumns+` FROM inventory_batches WHERE id=$1`, uid))
}

func (r *postgresRepo) ListByRetailer(ctx context.Context, retailerID string) ([]*Batch, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+batchColumns+` FROM inventory_batches WHERE retailer_id=$1 ORDER BY expires_at ASC`,
		retailerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBatches(rows)
}

func (r *postgresRepo) ListByRetailerProduct(ctx context.Context, retailerID, productID string) ([]*Batch, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+batchColumns+` FROM inventory_batches
		 WHERE retailer_id=$1 AND product_id=$2 ORDER BY expires_at ASC`,
		retailerID, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBatches(rows)
}

func (r *postgresRepo) Update(ctx context.Context, b *Batch) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE inventory_batches
		SET quantity=$1, unit_cost=$2, sale_price=$3, expires_at=$4, updated_at=$5
		WHERE id=$6`,
		b.Quantity, b.UnitCost, b.SalePrice, b.ExpiresAt, time.Now(), b.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM inventory_batches WHERE id=$1`, uid)
	return err
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanBatch(row rowScanner) (*Batch, error) {
	b := &Batch{}
	err := row.Scan(&b.ID, &b.RetailerID, &b.ProductID, &b.Quantity,
		&b.UnitCost, &b.SalePrice, &b.ExpiresAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func collectBatches(rows *sql.Rows) ([]*Batch, error) {
	var batches []*Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}
