package expenseService

import (
	"ExpenseTracker/internal/api/expense"
	"ExpenseTracker/internal/entity"
	"ExpenseTracker/pkg/money"
	"errors"
	"strings"
)

// validateRequest turns a raw submission into a storable expense, reporting
// the first failing field. Category and description keep their submitted
// casing and wording, only surrounding whitespace is trimmed.
func validateRequest(req expense.CreateExpenseRequest) (entity.Expense, error) {
	amount := normalizeAmount(req.Amount)
	if amount == "" {
		return entity.Expense{}, expense.ErrAmountRequired
	}

	subunits, err := money.ToSubunits(amount)
	if err != nil {
		switch {
		case errors.Is(err, money.ErrNegativeAmount):
			return entity.Expense{}, expense.ErrAmountNegative
		case errors.Is(err, money.ErrTooPrecise):
			return entity.Expense{}, expense.ErrAmountTooPrecise
		default:
			return entity.Expense{}, expense.ErrInvalidAmount
		}
	}

	e := entity.Expense{
		AmountSubunits: subunits,
		Category:       strings.TrimSpace(req.Category),
		Description:    strings.TrimSpace(req.Description),
		Date:           strings.TrimSpace(req.Date),
	}

	if err := e.Validate(); err != nil {
		return entity.Expense{}, err
	}

	return e, nil
}

// normalizeAmount unwraps the raw JSON token: a bare number literal is used
// as-is, a string literal is unquoted, anything else fails downstream.
func normalizeAmount(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}
