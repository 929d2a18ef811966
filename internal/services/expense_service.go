package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/apperr"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/metrics"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/models"
	repo "github.com/Ogezi-Emmanuel/campus-planner-backend/internal/repository"
	"github.com/shopspring/decimal"
)

// ExpenseService records expenses and keeps the weekly allowance
// balance in step with them. The expense insert and the balance debit
// are two independent backend calls with no surrounding transaction; a
// failure between them leaves an expense recorded with the balance
// untouched, which is reported as a partial-failure result rather than
// silently swallowed.
type ExpenseService struct {
	expenses repo.Expenses
	balances *BalanceStore

	callTimeout time.Duration
	now         func() time.Time
	log         *slog.Logger
}

func NewExpenseService(expenses repo.Expenses, balances *BalanceStore, callTimeout time.Duration, log *slog.Logger) *ExpenseService {
	if callTimeout <= 0 {
		callTimeout = 10 * time.Second
	}
	return &ExpenseService{
		expenses:    expenses,
		balances:    balances,
		callTimeout: callTimeout,
		now:         time.Now,
		log:         log,
	}
}

// RecordResult is what a record-expense call produced. On a
// partial-failure error the Expense is still populated: it IS in the
// ledger, only the balance debit is missing.
type RecordResult struct {
	Expense models.Expense `json:"expense"`
	Balance models.Balance `json:"balance"`
}

// RecordExpense parses rawAmount, inserts the expense, then debits the
// balance (current − amount, rounded to two decimals). The debit may
// drive the balance negative; no floor is enforced.
//
// Retrying the debit alone after a partial failure is only safe when no
// concurrent writer exists, so no automatic retry is attempted here.
func (s *ExpenseService) RecordExpense(ctx context.Context, user models.Profile, itemName, rawAmount string) (RecordResult, error) {
	if itemName == "" {
		return RecordResult{}, apperr.Validation("item_name", "required")
	}
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return RecordResult{}, err
	}

	insertCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	expense, err := s.expenses.Insert(insertCtx, user.ID, itemName, amount, dateOnly(s.now()))
	cancel()
	if err != nil {
		return RecordResult{}, err
	}
	metrics.ExpensesRecorded.Inc()

	res := RecordResult{Expense: expense}

	bal, err := s.balances.Read(ctx, user.ID)
	if err != nil {
		metrics.PartialFailures.Inc()
		s.log.Error("expense recorded but balance not debited", "expense_id", expense.ID, "err", err)
		return res, apperr.Partialf(err, "expense %s recorded but balance read failed", expense.ID)
	}

	newBalance := bal.Amount.Sub(amount).Round(2)
	if err := s.balances.Write(ctx, user, newBalance); err != nil {
		metrics.PartialFailures.Inc()
		s.log.Error("expense recorded but balance not debited", "expense_id", expense.ID, "err", err)
		return res, apperr.Partialf(err, "expense %s recorded but balance not debited", expense.ID)
	}

	res.Balance = models.Balance{UserID: user.ID, Amount: newBalance, StorageMode: s.balances.Mode()}
	return res, nil
}

// SaveAllowance sets the balance to rawAmount. Unlike the debit path
// this one rejects negative values.
func (s *ExpenseService) SaveAllowance(ctx context.Context, user models.Profile, rawAmount string) (models.Balance, error) {
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return models.Balance{}, err
	}
	if amount.IsNegative() {
		return models.Balance{}, apperr.Validation("allowance", "must not be negative")
	}
	amount = amount.Round(2)
	if err := s.balances.Write(ctx, user, amount); err != nil {
		return models.Balance{}, err
	}
	return models.Balance{UserID: user.ID, Amount: amount, StorageMode: s.balances.Mode()}, nil
}

// Allowance returns the current balance and where it is stored.
func (s *ExpenseService) Allowance(ctx context.Context, userID string) (models.Balance, error) {
	return s.balances.Read(ctx, userID)
}

// List returns the user's expenses in the requested order. Unknown
// order keys are rejected so the two call-site orderings stay an
// explicit choice.
func (s *ExpenseService) List(ctx context.Context, userID string, order models.ExpenseOrder) ([]models.Expense, error) {
	switch order {
	case models.OrderByDate, models.OrderByCreatedAt:
	default:
		return nil, apperr.Validation("order", "must be date or created_at")
	}
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.expenses.List(ctx, userID, order)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, apperr.Validation("amount", "not a valid number")
	}
	return d, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
