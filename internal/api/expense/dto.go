package expense

import "encoding/json"

const (
	SortDateDesc = "date_desc"
	SortDateAsc  = "date_asc"
)

// CreateExpenseRequest carries a raw expense submission. Amount stays a raw
// JSON token so both `12.34` and `"12.34"` decode without ever passing
// through a binary float.
type CreateExpenseRequest struct {
	Amount      json.RawMessage `json:"amount" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Date        string          `json:"date" validate:"required"`
}

type ExpenseResponse struct {
	ID          int64  `json:"id"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
	CreatedAt   string `json:"created_at"`
}

type ListExpensesQuery struct {
	Category string
	Sort     string
}
