package expenseRepository

import (
	"ExpenseTracker/internal/api/expense"
	"ExpenseTracker/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Expense:     &expenseRepository{q: sqlExecutor, log: r.log},
		Idempotency: &idempotencyRepository{q: sqlExecutor, log: r.log},
		Commit:      commitFunc,
		Rollback:    rollbackFunc,
	}, nil
}

type Client struct {
	Expense interface {
		CreateExpense(c context.Context, e entity.Expense) (int64, error)
		GetExpenseByID(c context.Context, id int64) (entity.Expense, error)
		GetExpenses(c context.Context, filter expense.ListExpensesQuery) ([]entity.Expense, error)
	}

	Idempotency interface {
		CreateRecord(c context.Context, record entity.IdempotencyRecord) error
		GetRecordByFingerprint(c context.Context, fingerprint string) (entity.IdempotencyRecord, error)
	}

	Commit   func() error
	Rollback func() error
}

type expenseRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type idempotencyRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
