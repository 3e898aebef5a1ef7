package monetization

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresProposalRepo struct{ db *sql.DB }

func NewPostgresProposalRepository(db *sql.DB) ProposalRepository {
	return &postgresProposalRepo{db: db}
}

const proposalColumns = `id,industry_id,retailer_id,fund_id,value,status,description,created_at,decided_at`

func (r *postgresProposalRepo) Create(ctx context.Context, p *Proposal) error {
	var retailerID, fundID interface{}
	if p.RetailerID != nil {
		retailerID = *p.RetailerID
	}
	if p.FundID != nil {
		fundID = *p.FundID
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO proposals (id, industry_id, retailer_id, fund_id, value, status, description)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.IndustryID, retailerID, fundID, p.Value, p.Status, p.Description)
	return err
}

func (r *postgresProposalRepo) GetByID(ctx context.Context, id string) (*Proposal, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanProposal(r.db.QueryRowContext(ctx,
		`SELECT `+proposalColumns+` FROM proposals WHERE id=$1`, uid))
}

func (r *postgresProposalRepo) ListByIndustry(ctx context.Context, industryID string) ([]*Proposal, error) {
	return r.list(ctx, `industry_id=$1`, industryID)
}

func (r *postgresProposalRepo) ListByRetailer(ctx context.Context, retailerID string) ([]*Proposal, error) {
	return r.list(ctx, `retailer_id=$1`, retailerID)
}

func (r *postgresProposalRepo) ListByFund(ctx context.Context, fundID string) ([]*Proposal, error) {
	return r.list(ctx, `fund_id=$1`, fundID)
}

func (r *postgresProposalRepo) list(ctx context.Context, where string, arg interface{}) ([]*Proposal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+proposalColumns+` FROM proposals WHERE `+where+` ORDER BY created_at DESC`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var proposals []*Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

func (r *postgresProposalRepo) Update(ctx context.Context, p *Proposal) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE proposals SET status=$1, decided_at=$2 WHERE id=$3`,
		p.Status, p.DecidedAt, p.ID)
	return err
}

func scanProposal(row rowScanner) (*Proposal, error) {
	p := &Proposal{}
	var retailerID, fundID sql.NullString
	err := row.Scan(&p.ID, &p.IndustryID, &retailerID, &fundID, &p.Value,
		&p.Status, &p.Description, &p.CreatedAt, &p.DecidedAt)
	if err != nil {
		return nil, err
	}
	if retailerID.Valid {
		rid, err := uuid.Parse(retailerID.String)
		if err != nil {
			return nil, err
		}
		p.RetailerID = &rid
	}
	if fundID.Valid {
		fid, err := uuid.Parse(fundID.String)
		if err != nil {
			return nil, err
		}
		p.FundID = &fid
	}
	return p, nil
}

type rowScanner interface{ Scan(dest ...interface{}) error }

type postgresFundRepo struct{ db *sql.DB }

func NewPostgresFundRepository(db *sql.DB) FundRepository {
	return &postgresFundRepo{db: db}
}

const fundColumns = `id,name,status,member_ids,created_at,updated_at`

func (r *postgresFundRepo) Create(ctx context.Context, f *DataFund) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO data_funds (id, name, status, member_ids)
		VALUES ($1,$2,$3,$4)`,
		f.ID, f.Name, f.Status, pq.Array(memberStrings(f.MemberIDs)))
	return err
}

func (r *postgresFundRepo) GetByID(ctx context.Context, id string) (*DataFund, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanFund(r.db.QueryRowContext(ctx,
		`SELECT `+fundColumns+` FROM data_funds WHERE id=$1`, uid))
}

func (r *postgresFundRepo) List(ctx context.Context) ([]*DataFund, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ` + fundColumns + ` FROM data_funds ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var funds []*DataFund
	for rows.Next() {
		f, err := scanFund(rows)
		if err != nil {
			return nil, err
		}
		funds = append(funds, f)
	}
	return funds, rows.Err()
}

func (r *postgresFundRepo) Update(ctx context.Context, f *DataFund) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE data_funds SET name=$1, status=$2, member_ids=$3, updated_at=now()
		WHERE id=$4`,
		f.Name, f.Status, pq.Array(memberStrings(f.MemberIDs)), f.ID)
	return err
}

func scanFund(row rowScanner) (*DataFund, error) {
	f := &DataFund{}
	var members []string
	err := row.Scan(&f.ID, &f.Name, &f.Status, pq.Array(&members), &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			return nil, err
		}
		f.MemberIDs = append(f.MemberIDs, id)
	}
	return f, nil
}

func memberStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
