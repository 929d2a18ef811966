package postgres

import (
	repo "github.com/Ogezi-Emmanuel/campus-planner-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Profiles   repo.Profiles
	Expenses   repo.Expenses
	StudyItems repo.StudyItems
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Profiles:   &profilesRepo{pool},
		Expenses:   &expensesRepo{pool},
		StudyItems: &studyItemsRepo{pool},
	}
}
