package expenseService

import (
	"testing"

	"ExpenseTracker/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintDeterministic(t *testing.T) {
	e := entity.Expense{
		AmountSubunits: 1010,
		Category:       "Food",
		Description:    "Lunch",
		Date:           "2025-02-18",
	}

	assert.Equal(t, Fingerprint("", e), Fingerprint("", e))
	assert.Len(t, Fingerprint("", e), 64)
}

func TestFingerprintChangesWithContent(t *testing.T) {
	base := entity.Expense{
		AmountSubunits: 1010,
		Category:       "Food",
		Description:    "Lunch",
		Date:           "2025-02-18",
	}

	variants := []entity.Expense{
		{AmountSubunits: 1011, Category: "Food", Description: "Lunch", Date: "2025-02-18"},
		{AmountSubunits: 1010, Category: "Transport", Description: "Lunch", Date: "2025-02-18"},
		{AmountSubunits: 1010, Category: "Food", Description: "Dinner", Date: "2025-02-18"},
		{AmountSubunits: 1010, Category: "Food", Description: "Lunch", Date: "2025-02-19"},
	}

	for _, v := range variants {
		assert.NotEqual(t, Fingerprint("", base), Fingerprint("", v))
	}
}

func TestFingerprintFieldBoundaries(t *testing.T) {
	// Content shifted across the category/description boundary must not
	// collide.
	a := entity.Expense{AmountSubunits: 100, Category: "ab", Description: "c", Date: "2025-02-18"}
	b := entity.Expense{AmountSubunits: 100, Category: "a", Description: "bc", Date: "2025-02-18"}

	assert.NotEqual(t, Fingerprint("", a), Fingerprint("", b))
}

func TestFingerprintClientTokenWins(t *testing.T) {
	a := entity.Expense{AmountSubunits: 100, Category: "Food", Description: "x", Date: "2025-02-18"}
	b := entity.Expense{AmountSubunits: 999, Category: "Travel", Description: "y", Date: "2025-03-01"}

	// Same token, different content: same fingerprint.
	assert.Equal(t, Fingerprint("client-key-1", a), Fingerprint("client-key-1", b))

	// Different tokens, same content: different fingerprints.
	assert.NotEqual(t, Fingerprint("client-key-1", a), Fingerprint("client-key-2", a))

	// Token whitespace is incidental formatting.
	assert.Equal(t, Fingerprint("  client-key-1  ", a), Fingerprint("client-key-1", a))

	// Blank token falls back to content hashing.
	assert.Equal(t, Fingerprint("   ", a), Fingerprint("", a))
}
