package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	ItemName  string          `json:"item_name"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// ExpenseOrder selects the sort key for expense listings. The dashboard
// sorts by expense date, the tracker by insertion time.
type ExpenseOrder string

const (
	OrderByDate      ExpenseOrder = "date"
	OrderByCreatedAt ExpenseOrder = "created_at"
)
