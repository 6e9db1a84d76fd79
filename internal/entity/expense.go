package entity

import (
	"ExpenseTracker/internal/api/expense"
	"time"
)

// DateLayout is the calendar-date format expenses are stored and compared in.
const DateLayout = "2006-01-02"

type Expense struct {
	ID             int64  `json:"id"`
	AmountSubunits int64  `json:"amount_subunits"`
	Category       string `json:"category"`
	Description    string `json:"description"`
	Date           string `json:"date"`
	CreatedAt      string `json:"created_at"`
}

type IdempotencyRecord struct {
	Fingerprint      string `json:"fingerprint"`
	ExpenseID        int64  `json:"expense_id"`
	ResponseSnapshot []byte `json:"-"`
	CreatedAt        string `json:"created_at"`
}

// IsValidDate reports whether date is a real calendar date in YYYY-MM-DD form.
func IsValidDate(date string) bool {
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	return parsed.Format(DateLayout) == date
}

func (e *Expense) Validate() error {
	if e.AmountSubunits < 0 {
		return expense.ErrAmountNegative
	}

	if e.Category == "" {
		return expense.ErrCategoryRequired
	}

	if e.Description == "" {
		return expense.ErrDescriptionRequired
	}

	if e.Date == "" {
		return expense.ErrDateRequired
	}

	if !IsValidDate(e.Date) {
		return expense.ErrInvalidDate
	}

	return nil
}
