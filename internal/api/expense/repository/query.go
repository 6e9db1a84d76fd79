package expenseRepository

const (
	queryCreateExpense = `
		INSERT INTO expenses (
			amount_subunits,
			category,
			description,
			date,
			created_at
		) VALUES (
			:amount_subunits,
			:category,
			:description,
			:date,
			:created_at
		)
	`

	queryGetExpenseByID = `
		SELECT
			id,
			amount_subunits,
			category,
			description,
			date,
			created_at
		FROM expenses
		WHERE id = :id
	`

	queryGetExpensesDateDesc = `
		SELECT
			id,
			amount_subunits,
			category,
			description,
			date,
			created_at
		FROM expenses
		ORDER BY date DESC, id ASC
	`

	queryGetExpensesDateAsc = `
		SELECT
			id,
			amount_subunits,
			category,
			description,
			date,
			created_at
		FROM expenses
		ORDER BY date ASC, id ASC
	`

	queryGetExpensesByCategoryDateDesc = `
		SELECT
			id,
			amount_subunits,
			category,
			description,
			date,
			created_at
		FROM expenses
		WHERE category = :category
		ORDER BY date DESC, id ASC
	`

	queryGetExpensesByCategoryDateAsc = `
		SELECT
			id,
			amount_subunits,
			category,
			description,
			date,
			created_at
		FROM expenses
		WHERE category = :category
		ORDER BY date ASC, id ASC
	`

	queryCreateIdempotencyRecord = `
		INSERT INTO idempotency_records (
			fingerprint,
			expense_id,
			response_snapshot,
			created_at
		) VALUES (
			:fingerprint,
			:expense_id,
			:response_snapshot,
			:created_at
		)
	`

	queryGetIdempotencyRecordByFingerprint = `
		SELECT
			fingerprint,
			expense_id,
			response_snapshot,
			created_at
		FROM idempotency_records
		WHERE fingerprint = :fingerprint
	`
)
