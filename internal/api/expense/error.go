package expense

import "ExpenseTracker/pkg/response"

var (
	ErrAmountRequired      = response.NewError(400, "amount is required")
	ErrInvalidAmount       = response.NewError(400, "amount must be a valid number")
	ErrAmountNegative      = response.NewError(400, "amount must be non-negative")
	ErrAmountTooPrecise    = response.NewError(400, "amount must have at most 2 decimal places")
	ErrCategoryRequired    = response.NewError(400, "category is required")
	ErrDescriptionRequired = response.NewError(400, "description is required")
	ErrDateRequired        = response.NewError(400, "date is required")
	ErrInvalidDate         = response.NewError(400, "date must be a valid date in YYYY-MM-DD format")
	ErrInvalidSort         = response.NewError(400, "sort must be date_asc or date_desc")
	ErrExpenseNotFound     = response.NewError(404, "expense not found")
	ErrCreateExpense       = response.NewError(500, "failed to create expense")
	ErrListExpenses        = response.NewError(500, "failed to list expenses")
)
