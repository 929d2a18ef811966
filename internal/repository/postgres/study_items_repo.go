package postgres

import (
	"context"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type studyItemsRepo struct{ pool *pgxpool.Pool }

func (r *studyItemsRepo) Insert(ctx context.Context, item models.StudyItem) (models.StudyItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO study_items(id, user_id, title, subject, due_date, status)
		 VALUES($1,$2,$3,$4,$5,$6)
		 RETURNING id, user_id, title, subject, due_date, status`,
		item.ID, item.UserID, item.Title, item.Subject, item.DueDate, item.Status,
	).Scan(&item.ID, &item.UserID, &item.Title, &item.Subject, &item.DueDate, &item.Status)
	return item, translateErr(err)
}

func (r *studyItemsRepo) List(ctx context.Context, userID string) ([]models.StudyItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, title, subject, due_date, status
		   FROM study_items WHERE user_id=$1 ORDER BY due_date ASC`, userID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []models.StudyItem
	for rows.Next() {
		var it models.StudyItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.Title, &it.Subject, &it.DueDate, &it.Status); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, translateErr(rows.Err())
}

func (r *studyItemsRepo) GetByID(ctx context.Context, id string) (models.StudyItem, error) {
	var it models.StudyItem
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, title, subject, due_date, status FROM study_items WHERE id=$1`, id,
	).Scan(&it.ID, &it.UserID, &it.Title, &it.Subject, &it.DueDate, &it.Status)
	return it, translateErr(err)
}

func (r *studyItemsRepo) UpdateStatus(ctx context.Context, id string, status models.StudyStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE study_items SET status=$2 WHERE id=$1`, id, status)
	return translateErr(err)
}
