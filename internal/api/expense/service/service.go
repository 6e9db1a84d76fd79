package expenseService

import (
	"ExpenseTracker/internal/api/expense"
	expenseRepository "ExpenseTracker/internal/api/expense/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// CreateExpenseResult carries the exact response body persisted for the
// request's fingerprint. Duplicate submissions replay the same bytes.
type CreateExpenseResult struct {
	Snapshot  []byte
	Duplicate bool
}

type IExpenseService interface {
	CreateExpense(ctx context.Context, req expense.CreateExpenseRequest, idempotencyKey string) (CreateExpenseResult, error)
	GetExpenses(ctx context.Context, filter expense.ListExpensesQuery) ([]expense.ExpenseResponse, error)
}

type expenseService struct {
	log               *logrus.Logger
	expenseRepository expenseRepository.Repository
}

func NewExpenseService(log *logrus.Logger, er expenseRepository.Repository) IExpenseService {
	return &expenseService{
		log:               log,
		expenseRepository: er,
	}
}
