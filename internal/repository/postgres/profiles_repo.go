package postgres

import (
	"context"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type profilesRepo struct{ pool *pgxpool.Pool }

func (r *profilesRepo) Create(ctx context.Context, username, email, hash string) (models.Profile, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO profiles(id, username, email, password_hash) VALUES($1,$2,$3,$4)`,
		id, username, email, hash,
	)
	if err != nil {
		return models.Profile{}, translateConflictErr(err, "email", "email already registered")
	}
	return r.GetByID(ctx, id)
}

func (r *profilesRepo) GetByID(ctx context.Context, id string) (models.Profile, error) {
	var p models.Profile
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, COALESCE(full_name,''), email, password_hash, created_at, updated_at
		   FROM profiles WHERE id=$1`, id,
	).Scan(&p.ID, &p.Username, &p.FullName, &p.Email, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	return p, translateErr(err)
}

func (r *profilesRepo) GetByEmail(ctx context.Context, email string) (models.Profile, error) {
	var p models.Profile
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, COALESCE(full_name,''), email, password_hash, created_at, updated_at
		   FROM profiles WHERE email=$1`, email,
	).Scan(&p.ID, &p.Username, &p.FullName, &p.Email, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	return p, translateErr(err)
}

func (r *profilesRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE profiles SET password_hash=$2, updated_at=now() WHERE id=$1`,
		id, hash,
	)
	return translateErr(err)
}

func (r *profilesRepo) GetAllowance(ctx context.Context, id string) (decimal.Decimal, bool, error) {
	var amount decimal.Decimal
	rows, err := r.pool.Query(ctx,
		`SELECT weekly_allowance FROM profiles WHERE id=$1`, id)
	if err != nil {
		return decimal.Zero, false, translateAllowanceErr(err)
	}
	defer rows.Close()
	if !rows.Next() {
		return decimal.Zero, false, translateAllowanceErr(rows.Err())
	}
	if err := rows.Scan(&amount); err != nil {
		return decimal.Zero, false, translateAllowanceErr(err)
	}
	return amount, true, nil
}

func (r *profilesRepo) UpdateAllowance(ctx context.Context, id string, amount decimal.Decimal) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE profiles SET weekly_allowance=$2, updated_at=now() WHERE id=$1`,
		id, amount,
	)
	if err != nil {
		return false, translateAllowanceErr(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *profilesRepo) InsertAllowance(ctx context.Context, id, username string, amount decimal.Decimal) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO profiles(id, username, email, password_hash, weekly_allowance)
		 VALUES($1,$2,'','',$3)
		 ON CONFLICT (id) DO UPDATE SET weekly_allowance=EXCLUDED.weekly_allowance`,
		id, username, amount,
	)
	return translateAllowanceErr(err)
}
