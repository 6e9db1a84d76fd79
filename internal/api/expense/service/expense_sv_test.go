package expenseService

import (
	"context"
	"encoding/json"
	"testing"

	"ExpenseTracker/internal/api/expense"
	expenseRepository "ExpenseTracker/internal/api/expense/repository"
	"ExpenseTracker/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	expenses   []entity.Expense
	records    map[string]entity.IdempotencyRecord
	nextID     int64
	lastFilter expense.ListExpensesQuery

	// When set, the next CreateRecord call fails as if a concurrent request
	// committed the same fingerprint first; the winner's record is seeded so
	// the retry lookup finds it.
	raceWinner *entity.IdempotencyRecord
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		records: make(map[string]entity.IdempotencyRecord),
		nextID:  0,
	}
}

func (f *fakeRepository) NewClient(tx bool) (expenseRepository.Client, error) {
	return expenseRepository.Client{
		Expense:     &fakeExpenseRepo{f},
		Idempotency: &fakeIdempotencyRepo{f},
		Commit:      func() error { return nil },
		Rollback:    func() error { return nil },
	}, nil
}

type fakeExpenseRepo struct{ f *fakeRepository }

func (r *fakeExpenseRepo) CreateExpense(_ context.Context, e entity.Expense) (int64, error) {
	r.f.nextID++
	e.ID = r.f.nextID
	r.f.expenses = append(r.f.expenses, e)
	return e.ID, nil
}

func (r *fakeExpenseRepo) GetExpenseByID(_ context.Context, id int64) (entity.Expense, error) {
	for _, e := range r.f.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return entity.Expense{}, expense.ErrExpenseNotFound
}

func (r *fakeExpenseRepo) GetExpenses(_ context.Context, filter expense.ListExpensesQuery) ([]entity.Expense, error) {
	r.f.lastFilter = filter
	return r.f.expenses, nil
}

type fakeIdempotencyRepo struct{ f *fakeRepository }

func (r *fakeIdempotencyRepo) CreateRecord(_ context.Context, record entity.IdempotencyRecord) error {
	if r.f.raceWinner != nil {
		r.f.records[r.f.raceWinner.Fingerprint] = *r.f.raceWinner
		r.f.raceWinner = nil
		return expenseRepository.ErrFingerprintExists
	}
	if _, exists := r.f.records[record.Fingerprint]; exists {
		return expenseRepository.ErrFingerprintExists
	}
	r.f.records[record.Fingerprint] = record
	return nil
}

func (r *fakeIdempotencyRepo) GetRecordByFingerprint(_ context.Context, fingerprint string) (entity.IdempotencyRecord, error) {
	record, ok := r.f.records[fingerprint]
	if !ok {
		return entity.IdempotencyRecord{}, expenseRepository.ErrRecordNotFound
	}
	return record, nil
}

func newTestService(f *fakeRepository) IExpenseService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewExpenseService(logger, f)
}

func validRequest() expense.CreateExpenseRequest {
	return expense.CreateExpenseRequest{
		Amount:      json.RawMessage(`10.10`),
		Category:    "Food",
		Description: "Lunch",
		Date:        "2025-02-18",
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*expense.CreateExpenseRequest)
		wantErr error
	}{
		{"missing amount", func(r *expense.CreateExpenseRequest) { r.Amount = nil }, expense.ErrAmountRequired},
		{"non-numeric amount", func(r *expense.CreateExpenseRequest) { r.Amount = json.RawMessage(`"abc"`) }, expense.ErrInvalidAmount},
		{"negative amount", func(r *expense.CreateExpenseRequest) { r.Amount = json.RawMessage(`-5`) }, expense.ErrAmountNegative},
		{"overly precise amount", func(r *expense.CreateExpenseRequest) { r.Amount = json.RawMessage(`1.005`) }, expense.ErrAmountTooPrecise},
		{"blank category", func(r *expense.CreateExpenseRequest) { r.Category = "   " }, expense.ErrCategoryRequired},
		{"blank description", func(r *expense.CreateExpenseRequest) { r.Description = "" }, expense.ErrDescriptionRequired},
		{"missing date", func(r *expense.CreateExpenseRequest) { r.Date = "" }, expense.ErrDateRequired},
		{"month out of range", func(r *expense.CreateExpenseRequest) { r.Date = "2024-13-01" }, expense.ErrInvalidDate},
		{"impossible calendar date", func(r *expense.CreateExpenseRequest) { r.Date = "2024-02-30" }, expense.ErrInvalidDate},
		{"wrong date format", func(r *expense.CreateExpenseRequest) { r.Date = "18-02-2025" }, expense.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeRepository()
			svc := newTestService(f)

			req := validRequest()
			tt.mutate(&req)

			_, err := svc.CreateExpense(context.Background(), req, "")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.expenses, "no expense may be persisted on validation failure")
		})
	}
}

func TestCreateExpenseFirstSubmission(t *testing.T) {
	f := newFakeRepository()
	svc := newTestService(f)

	result, err := svc.CreateExpense(context.Background(), validRequest(), "")
	require.NoError(t, err)
	assert.False(t, result.Duplicate)

	var body expense.ExpenseResponse
	require.NoError(t, jsoniter.Unmarshal(result.Snapshot, &body))
	assert.Equal(t, int64(1), body.ID)
	assert.Equal(t, "10.10", body.Amount)
	assert.Equal(t, "Food", body.Category)
	assert.Equal(t, "Lunch", body.Description)
	assert.Equal(t, "2025-02-18", body.Date)
	assert.NotEmpty(t, body.CreatedAt)

	require.Len(t, f.expenses, 1)
	assert.Equal(t, int64(1010), f.expenses[0].AmountSubunits)
	require.Len(t, f.records, 1)
}

func TestCreateExpenseTrimsFields(t *testing.T) {
	f := newFakeRepository()
	svc := newTestService(f)

	req := expense.CreateExpenseRequest{
		Amount:      json.RawMessage(`"  50.50  "`),
		Category:    "  Food  ",
		Description: "  Lunch  ",
		Date:        " 2025-02-18 ",
	}

	result, err := svc.CreateExpense(context.Background(), req, "")
	require.NoError(t, err)

	var body expense.ExpenseResponse
	require.NoError(t, jsoniter.Unmarshal(result.Snapshot, &body))
	assert.Equal(t, "50.50", body.Amount)
	assert.Equal(t, "Food", body.Category)
	assert.Equal(t, "Lunch", body.Description)
	assert.Equal(t, "2025-02-18", body.Date)
}

func TestCreateExpenseDuplicateReplaysSnapshot(t *testing.T) {
	f := newFakeRepository()
	svc := newTestService(f)

	first, err := svc.CreateExpense(context.Background(), validRequest(), "")
	require.NoError(t, err)

	second, err := svc.CreateExpense(context.Background(), validRequest(), "")
	require.NoError(t, err)

	assert.True(t, second.Duplicate)
	assert.Equal(t, first.Snapshot, second.Snapshot)
	assert.Len(t, f.expenses, 1, "duplicate must not create a second expense")
}

func TestCreateExpenseClientTokenOverridesContent(t *testing.T) {
	f := newFakeRepository()
	svc := newTestService(f)

	first, err := svc.CreateExpense(context.Background(), validRequest(), "retry-token")
	require.NoError(t, err)

	// Different incidental content, same token: still the same operation.
	req := validRequest()
	req.Description = "Lunch (corrected)"

	second, err := svc.CreateExpense(context.Background(), req, "retry-token")
	require.NoError(t, err)

	assert.True(t, second.Duplicate)
	assert.Equal(t, first.Snapshot, second.Snapshot)
	assert.Len(t, f.expenses, 1)
}

func TestCreateExpenseConflictResolvedAsDuplicate(t *testing.T) {
	f := newFakeRepository()
	svc := newTestService(f)

	validated, err := validateRequest(validRequest())
	require.NoError(t, err)

	winner := entity.IdempotencyRecord{
		Fingerprint:      Fingerprint("", validated),
		ExpenseID:        7,
		ResponseSnapshot: []byte(`{"id":7}`),
		CreatedAt:        "2025-02-18T10:00:00Z",
	}
	f.raceWinner = &winner

	result, err := svc.CreateExpense(context.Background(), validRequest(), "")
	require.NoError(t, err)

	assert.True(t, result.Duplicate)
	assert.Equal(t, winner.ResponseSnapshot, result.Snapshot)
}

func TestGetExpensesInvalidSort(t *testing.T) {
	svc := newTestService(newFakeRepository())

	_, err := svc.GetExpenses(context.Background(), expense.ListExpensesQuery{Sort: "amount_desc"})
	assert.ErrorIs(t, err, expense.ErrInvalidSort)
}

func TestGetExpensesDefaultsToDateDesc(t *testing.T) {
	f := newFakeRepository()
	svc := newTestService(f)

	_, err := svc.GetExpenses(context.Background(), expense.ListExpensesQuery{})
	require.NoError(t, err)
	assert.Equal(t, expense.SortDateDesc, f.lastFilter.Sort)
}

func TestGetExpensesMapsAmounts(t *testing.T) {
	f := newFakeRepository()
	f.expenses = []entity.Expense{
		{ID: 1, AmountSubunits: 1010, Category: "Food", Description: "Lunch", Date: "2025-02-18", CreatedAt: "2025-02-18T10:00:00Z"},
	}
	svc := newTestService(f)

	result, err := svc.GetExpenses(context.Background(), expense.ListExpensesQuery{})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "10.10", result[0].Amount)
}
