package expenseService

import (
	"ExpenseTracker/internal/api/expense"
	expenseRepository "ExpenseTracker/internal/api/expense/repository"
	"ExpenseTracker/internal/entity"
	contextPkg "ExpenseTracker/pkg/context"
	"ExpenseTracker/pkg/money"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *expenseService) CreateExpense(ctx context.Context, req expense.CreateExpenseRequest, idempotencyKey string) (CreateExpenseResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	validated, err := validateRequest(req)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid expense submission")
		return CreateExpenseResult{}, err
	}

	fingerprint := Fingerprint(idempotencyKey, validated)

	repo, err := s.expenseRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return CreateExpenseResult{}, err
	}
	defer repo.Rollback()

	record, err := repo.Idempotency.GetRecordByFingerprint(ctx, fingerprint)
	if err == nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"fingerprint": fingerprint,
			"expense_id":  record.ExpenseID,
		}).Info("Duplicate submission, replaying stored response")
		return CreateExpenseResult{Snapshot: record.ResponseSnapshot, Duplicate: true}, nil
	}
	if !errors.Is(err, expenseRepository.ErrRecordNotFound) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to look up fingerprint")
		return CreateExpenseResult{}, err
	}

	validated.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	id, err := repo.Expense.CreateExpense(ctx, validated)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create expense")
		return CreateExpenseResult{}, expense.ErrCreateExpense
	}
	validated.ID = id

	snapshot, err := jsoniter.Marshal(makeExpenseResponse(validated))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to serialize response snapshot")
		return CreateExpenseResult{}, expense.ErrCreateExpense
	}

	err = repo.Idempotency.CreateRecord(ctx, entity.IdempotencyRecord{
		Fingerprint:      fingerprint,
		ExpenseID:        id,
		ResponseSnapshot: snapshot,
		CreatedAt:        validated.CreatedAt,
	})
	if err != nil {
		if errors.Is(err, expenseRepository.ErrFingerprintExists) {
			return s.replayAfterConflict(ctx, repo, fingerprint)
		}

		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create idempotency record")
		return CreateExpenseResult{}, expense.ErrCreateExpense
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit expense transaction")
		return CreateExpenseResult{}, expense.ErrCreateExpense
	}

	s.log.WithFields(logrus.Fields{
		"request_id":      requestID,
		"expense_id":      id,
		"amount_subunits": validated.AmountSubunits,
		"category":        validated.Category,
		"date":            validated.Date,
	}).Info("Expense created")

	return CreateExpenseResult{Snapshot: snapshot, Duplicate: false}, nil
}

// replayAfterConflict resolves the losing side of a concurrent fingerprint
// race: the transaction is rolled back and the winner's stored response is
// served as a duplicate. Retried once, outside the failed transaction.
func (s *expenseService) replayAfterConflict(ctx context.Context, repo expenseRepository.Client, fingerprint string) (CreateExpenseResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := repo.Rollback(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to roll back after fingerprint conflict")
	}

	reader, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return CreateExpenseResult{}, expense.ErrCreateExpense
	}

	record, err := reader.Idempotency.GetRecordByFingerprint(ctx, fingerprint)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"fingerprint": fingerprint,
			"error":       err.Error(),
		}).Error("Failed to replay response after fingerprint conflict")
		return CreateExpenseResult{}, expense.ErrCreateExpense
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"fingerprint": fingerprint,
		"expense_id":  record.ExpenseID,
	}).Info("Concurrent duplicate resolved, replaying stored response")

	return CreateExpenseResult{Snapshot: record.ResponseSnapshot, Duplicate: true}, nil
}

func (s *expenseService) GetExpenses(ctx context.Context, filter expense.ListExpensesQuery) ([]expense.ExpenseResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	switch filter.Sort {
	case "":
		filter.Sort = expense.SortDateDesc
	case expense.SortDateAsc, expense.SortDateDesc:
	default:
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"sort":       filter.Sort,
		}).Warn("Invalid sort parameter")
		return nil, expense.ErrInvalidSort
	}

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	expenses, err := repo.Expense.GetExpenses(ctx, filter)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"category":   filter.Category,
			"sort":       filter.Sort,
			"error":      err.Error(),
		}).Error("Failed to get expenses")
		return nil, expense.ErrListExpenses
	}

	result := make([]expense.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		result = append(result, makeExpenseResponse(e))
	}

	return result, nil
}

func makeExpenseResponse(e entity.Expense) expense.ExpenseResponse {
	return expense.ExpenseResponse{
		ID:          e.ID,
		Amount:      money.ToDecimal(e.AmountSubunits),
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}
