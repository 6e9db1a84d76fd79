package expenseRepository

import (
	"ExpenseTracker/internal/api/expense"
	"ExpenseTracker/internal/entity"
	contextPkg "ExpenseTracker/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ExpenseDB struct {
	ID             sql.NullInt64  `db:"id"`
	AmountSubunits sql.NullInt64  `db:"amount_subunits"`
	Category       sql.NullString `db:"category"`
	Description    sql.NullString `db:"description"`
	Date           sql.NullString `db:"date"`
	CreatedAt      sql.NullString `db:"created_at"`
}

func (r *expenseRepository) CreateExpense(c context.Context, e entity.Expense) (int64, error) {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"amount_subunits": e.AmountSubunits,
		"category":        e.Category,
		"description":     e.Description,
		"date":            e.Date,
		"created_at":      e.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateExpense")
		return 0, err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating expense")

		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateExpense last insert id err")

		return 0, err
	}

	return id, nil
}

func (r *expenseRepository) GetExpenseByID(c context.Context, id int64) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(c)
	var row ExpenseDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetExpenseByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenseByID named query preparation err")

		return entity.Expense{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("GetExpenseByID no rows found")
			return entity.Expense{}, expense.ErrExpenseNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenseByID execution err")
		return entity.Expense{}, err
	}

	return r.makeExpense(row), nil
}

func (r *expenseRepository) GetExpenses(c context.Context, filter expense.ListExpensesQuery) ([]entity.Expense, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []ExpenseDB
	var queryToUse string

	argsKV := map[string]interface{}{}

	switch {
	case filter.Category != "" && filter.Sort == expense.SortDateAsc:
		queryToUse = queryGetExpensesByCategoryDateAsc
		argsKV["category"] = filter.Category
	case filter.Category != "":
		queryToUse = queryGetExpensesByCategoryDateDesc
		argsKV["category"] = filter.Category
	case filter.Sort == expense.SortDateAsc:
		queryToUse = queryGetExpensesDateAsc
	default:
		queryToUse = queryGetExpensesDateDesc
	}

	query, args, err := sqlx.Named(queryToUse, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenses named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenses execution err")
		return nil, err
	}

	result := make([]entity.Expense, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeExpense(row))
	}

	return result, nil
}

func (r *expenseRepository) makeExpense(row ExpenseDB) entity.Expense {
	return entity.Expense{
		ID:             row.ID.Int64,
		AmountSubunits: row.AmountSubunits.Int64,
		Category:       row.Category.String,
		Description:    row.Description.String,
		Date:           row.Date.String,
		CreatedAt:      row.CreatedAt.String,
	}
}
