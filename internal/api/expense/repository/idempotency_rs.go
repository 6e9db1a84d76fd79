package expenseRepository

import (
	"ExpenseTracker/internal/entity"
	contextPkg "ExpenseTracker/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	sqlite3 "modernc.org/sqlite"
)

var (
	// ErrFingerprintExists reports that another request already claimed the
	// fingerprint. Callers treat it as a duplicate submission, never as a failure.
	ErrFingerprintExists = errors.New("fingerprint already recorded")

	ErrRecordNotFound = errors.New("idempotency record not found")
)

type IdempotencyRecordDB struct {
	Fingerprint      sql.NullString `db:"fingerprint"`
	ExpenseID        sql.NullInt64  `db:"expense_id"`
	ResponseSnapshot []byte         `db:"response_snapshot"`
	CreatedAt        sql.NullString `db:"created_at"`
}

func (r *idempotencyRepository) CreateRecord(c context.Context, record entity.IdempotencyRecord) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"fingerprint":       record.Fingerprint,
		"expense_id":        record.ExpenseID,
		"response_snapshot": record.ResponseSnapshot,
		"created_at":        record.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateIdempotencyRecord, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateRecord")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		if isUniqueConstraint(err) {
			r.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"fingerprint": record.Fingerprint,
			}).Warn("CreateRecord lost fingerprint race to a concurrent request")
			return ErrFingerprintExists
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating idempotency record")

		return err
	}

	return nil
}

func (r *idempotencyRepository) GetRecordByFingerprint(c context.Context, fingerprint string) (entity.IdempotencyRecord, error) {
	requestID := contextPkg.GetRequestID(c)
	var row IdempotencyRecordDB

	argsKV := map[string]interface{}{
		"fingerprint": fingerprint,
	}

	query, args, err := sqlx.Named(queryGetIdempotencyRecordByFingerprint, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRecordByFingerprint named query preparation err")

		return entity.IdempotencyRecord{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.IdempotencyRecord{}, ErrRecordNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRecordByFingerprint execution err")
		return entity.IdempotencyRecord{}, err
	}

	return entity.IdempotencyRecord{
		Fingerprint:      row.Fingerprint.String,
		ExpenseID:        row.ExpenseID.Int64,
		ResponseSnapshot: row.ResponseSnapshot,
		CreatedAt:        row.CreatedAt.String,
	}, nil
}

// SQLite reports duplicate keys as constraint violations: 19 is the generic
// constraint code, 1555 and 2067 the primary-key and unique extended codes.
func isUniqueConstraint(err error) bool {
	var serr *sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}

	switch serr.Code() {
	case 19, 1555, 2067:
		return true
	default:
		return false
	}
}
