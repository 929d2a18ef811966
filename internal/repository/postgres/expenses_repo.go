package postgres

import (
	"context"
	"time"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type expensesRepo struct{ pool *pgxpool.Pool }

func (r *expensesRepo) Insert(ctx context.Context, userID, itemName string, amount decimal.Decimal, date time.Time) (models.Expense, error) {
	var e models.Expense
	err := r.pool.QueryRow(ctx,
		`INSERT INTO expenses(id, user_id, item_name, amount, date)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING id, user_id, item_name, amount, date, created_at`,
		uuid.NewString(), userID, itemName, amount, date,
	).Scan(&e.ID, &e.UserID, &e.ItemName, &e.Amount, &e.Date, &e.CreatedAt)
	return e, translateErr(err)
}

func (r *expensesRepo) List(ctx context.Context, userID string, order models.ExpenseOrder) ([]models.Expense, error) {
	q := `SELECT id, user_id, item_name, amount, date, created_at
	        FROM expenses WHERE user_id=$1 ORDER BY created_at DESC`
	if order == models.OrderByDate {
		q = `SELECT id, user_id, item_name, amount, date, created_at
		       FROM expenses WHERE user_id=$1 ORDER BY date DESC, created_at DESC`
	}
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.ItemName, &e.Amount, &e.Date, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, translateErr(rows.Err())
}
