package sales

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitrinedata/varejo-backend/internal/modules/inventory"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const saleColumns = `id,retailer_id,customer_id,items,gross_total,discount,net_total,payment_method,sold_at,created_at`

// CreateSale inserts the sale and applies its stock draws in one transaction.
// Each draw is guarded so concurrent sales cannot push a batch negative.
func (r *postgresRepo) CreateSale(ctx context.Context, s *Sale, draws []inventory.BatchDraw) error {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales
		  (id, retailer_id, customer_id, items, gross_total, discount, net_total, payment_method, sold_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		s.ID, s.RetailerID, s.CustomerID, items, s.GrossTotal, s.Discount,
		s.NetTotal, s.PaymentMethod, s.SoldAt)
	if err != nil {
		return err
	}

	for _, d := range draws {
		res, err := tx.ExecContext(ctx, `
			UPDATE inventory_batches
			SET quantity = quantity - $1, updated_at = $2
			WHERE id = $3 AND quantity >= $1`,
			d.Quantity, time.Now(), d.BatchID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n != 1 {
			return fmt.Errorf("batch %s: insufficient stock for draw of %d", d.BatchID, d.Quantity)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Sale, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanSale(r.db.QueryRowContext(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id=$1`, uid))
}

func (r *postgresRepo) ListByRetailerSince(ctx context.Context, retailerID string, since time.Time) ([]*Sale, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+saleColumns+` FROM sales
		 WHERE retailer_id=$1 AND sold_at >= $2 ORDER BY sold_at DESC`,
		retailerID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSales(rows)
}

func (r *postgresRepo) ListSince(ctx context.Context, since time.Time) ([]*Sale, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE sold_at >= $1 ORDER BY sold_at DESC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSales(rows)
}

func (r *postgresRepo) CountByRetailerSince(ctx context.Context, retailerID string, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sales WHERE retailer_id=$1 AND sold_at >= $2`,
		retailerID, since).Scan(&count)
	return count, err
}

func (r *postgresRepo) DeleteByRetailer(ctx context.Context, retailerID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE retailer_id=$1`, retailerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanSale(row rowScanner) (*Sale, error) {
	s := &Sale{}
	var items []byte
	err := row.Scan(&s.ID, &s.RetailerID, &s.CustomerID, &items, &s.GrossTotal,
		&s.Discount, &s.NetTotal, &s.PaymentMethod, &s.SoldAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &s.Items); err != nil {
		return nil, err
	}
	return s, nil
}

func collectSales(rows *sql.Rows) ([]*Sale, error) {
	var list []*Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
