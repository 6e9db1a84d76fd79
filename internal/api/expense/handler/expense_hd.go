package expenseHandler

import (
	"ExpenseTracker/internal/api/expense"
	contextPkg "ExpenseTracker/pkg/context"
	"ExpenseTracker/pkg/handlerUtil"
	"ExpenseTracker/pkg/log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

// HeaderIdempotencyKey carries the client-chosen token that overrides the
// content-derived fingerprint on retries.
const HeaderIdempotencyKey = "Idempotency-Key"

func (h *ExpenseHandler) CreateExpense(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create expense request")

	var req expense.CreateExpenseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	idempotencyKey := ctx.Get(HeaderIdempotencyKey)

	result, err := h.expenseService.CreateExpense(c, req, idempotencyKey)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_expense")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		// Duplicates replay the stored body with the same status as the
		// original response.
		ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return ctx.Status(fiber.StatusCreated).Send(result.Snapshot)
	}
}

func (h *ExpenseHandler) GetExpenses(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get expenses request")

	filter := expense.ListExpensesQuery{
		Category: strings.TrimSpace(ctx.Query("category")),
		Sort:     strings.TrimSpace(ctx.Query("sort")),
	}

	if filter.Sort != "" && filter.Sort != expense.SortDateAsc && filter.Sort != expense.SortDateDesc {
		return errHandler.Handle(ctx, requestID, expense.ErrInvalidSort, ctx.Path(), "parse_query")
	}

	expenses, err := h.expenseService.GetExpenses(c, filter)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_expenses")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, expenses)
	}
}
