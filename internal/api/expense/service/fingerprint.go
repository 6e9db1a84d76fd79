package expenseService

import (
	"ExpenseTracker/internal/entity"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Version prefix of the canonical serialization. Bump it if the field set or
// encoding ever changes so old fingerprints cannot collide with new ones.
const fingerprintVersion = "v1"

// Fingerprint derives the deduplication key for a write request. A trimmed
// client token wins when supplied; otherwise the key is a SHA-256 over a
// canonical serialization of the semantic fields, so identical submissions
// hash identically no matter how the raw request was formatted.
func Fingerprint(clientToken string, e entity.Expense) string {
	if token := strings.TrimSpace(clientToken); token != "" {
		sum := sha256.Sum256([]byte(token))
		return hex.EncodeToString(sum[:])
	}

	payload := strings.Join([]string{
		fingerprintVersion,
		strconv.FormatInt(e.AmountSubunits, 10),
		strconv.Quote(e.Category),
		strconv.Quote(e.Description),
		e.Date,
	}, "|")

	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
