package models

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bitbucket.org/indofreight/freight_backend/utils"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const (
	// Per-prefix sequence space is three digits wide. Running out within a
	// single period is a hard failure, not a wrap.
	maxSequencePerPeriod = 999

	// Number of full allocation attempts before an identifier conflict is
	// surfaced to the caller.
	allocationMaxAttempts = 5
)

var (
	ErrSequenceExhausted = errors.New("identifier sequence exhausted for period")
	ErrAllocationFailed  = errors.New("identifier allocation failed")
)

// ErrInUse signals a delete blocked by dependent rows.
func ErrInUse(resource, usedBy string) error {
	return fmt.Errorf("%s is used by %s", resource, usedBy)
}

func ErrInvalidEnum(field string) error {
	return fmt.Errorf("invalid %s", field)
}

// FiscalYearLabel returns the India financial-year label for a date,
// e.g. 2025-12-01 -> "25/26" and 2025-02-01 -> "24/25". The year runs
// April through March.
func FiscalYearLabel(date time.Time) string {
	start := date.Year()
	if date.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%02d/%02d", start%100, (start+1)%100)
}

func InvoiceNumberPrefix(date time.Time) string {
	return "INDO-" + FiscalYearLabel(date) + "-"
}

func ShipmentNumberPrefix(date time.Time) string {
	return fmt.Sprintf("SHP-%d-", date.Year())
}

func QuoteNumberPrefix(date time.Time) string {
	return fmt.Sprintf("QT-%d-", date.Year())
}

// ShipmentReferencePrefix builds the human-facing reference prefix from the
// shipment's direction and commodity class, e.g. "IMP-FZ-".
func ShipmentReferencePrefix(direction ShipmentDirection, commodity CommodityType) string {
	return string(direction) + "-" + string(commodity) + "-"
}

// ExtractSequence recovers the numeric sequence from an identifier that
// matches prefix followed by digits only. Anything else, including a
// trailing non-digit, is not a match.
func ExtractSequence(identifier, prefix string) (int, bool) {
	if len(identifier) <= len(prefix) || identifier[:len(prefix)] != prefix {
		return 0, false
	}
	seq, err := strconv.Atoi(identifier[len(prefix):])
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}

// NextSequence returns max+1 over the valid sequences found in existing.
// Identifiers that do not parse against the prefix are skipped, so a
// manually entered malformed value cannot poison the counter.
func NextSequence(existing []string, prefix string) int {
	max := 0
	for _, id := range existing {
		if seq, ok := ExtractSequence(id, prefix); ok && seq > max {
			max = seq
		}
	}
	return max + 1
}

func FormatIdentifier(prefix string, seq int) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// nextIdentifier scans the stored identifiers sharing prefix in the given
// column and proposes the next one. Callers persist the proposal inside
// the same request and retry on a duplicate-key error; the uniqueness
// constraint on the column is the final arbiter.
func nextIdentifier(ctx context.Context, tx *gorm.DB, model interface{}, column, prefix string) (string, error) {
	var existing []string
	err := tx.WithContext(ctx).Model(model).
		Where(column+" LIKE ?", prefix+"%").
		Pluck(column, &existing).Error
	if err != nil {
		return "", err
	}
	seq := NextSequence(existing, prefix)
	if seq > maxSequencePerPeriod {
		return "", ErrSequenceExhausted
	}
	return FormatIdentifier(prefix, seq), nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// allocateWithRetry runs persist with a freshly proposed identifier, up to
// allocationMaxAttempts times. A short-lived redis lock narrows the race
// window between scan and insert; the duplicate-key retry covers the rest.
func allocateWithRetry(ctx context.Context, db *gorm.DB, model interface{}, column, prefix, moduleName, functionName string,
	persist func(tx *gorm.DB, identifier string) error) error {

	lock, err := utils.AllocationLock(ctx, prefix, moduleName, functionName)
	if err == nil && lock != nil {
		defer lock.Release(context.Background())
	}

	var lastErr error
	for attempt := 1; attempt <= allocationMaxAttempts; attempt++ {
		identifier, err := nextIdentifier(ctx, db, model, column, prefix)
		if err != nil {
			return err
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			return persist(tx, identifier)
		})
		if err == nil {
			return nil
		}
		if !isDuplicateEntry(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w after %d attempts: %v", ErrAllocationFailed, allocationMaxAttempts, lastErr)
}
