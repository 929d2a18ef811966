package repository

import (
	"context"
	"time"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/models"
	"github.com/shopspring/decimal"
)

type Profiles interface {
	Create(ctx context.Context, username, email, passwordHash string) (models.Profile, error)
	GetByID(ctx context.Context, id string) (models.Profile, error)
	GetByEmail(ctx context.Context, email string) (models.Profile, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// Allowance accessors return apperr.KindSchemaUnsupported when the
	// weekly_allowance column (or the profiles table itself) is missing,
	// so the balance store can downgrade to local storage.
	GetAllowance(ctx context.Context, id string) (decimal.Decimal, bool, error)
	UpdateAllowance(ctx context.Context, id string, amount decimal.Decimal) (bool, error)
	InsertAllowance(ctx context.Context, id, username string, amount decimal.Decimal) error
}

type Expenses interface {
	Insert(ctx context.Context, userID, itemName string, amount decimal.Decimal, date time.Time) (models.Expense, error)
	List(ctx context.Context, userID string, order models.ExpenseOrder) ([]models.Expense, error)
}

type StudyItems interface {
	Insert(ctx context.Context, item models.StudyItem) (models.StudyItem, error)
	List(ctx context.Context, userID string) ([]models.StudyItem, error)
	GetByID(ctx context.Context, id string) (models.StudyItem, error)
	UpdateStatus(ctx context.Context, id string, status models.StudyStatus) error
}
