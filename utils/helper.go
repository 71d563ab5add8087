package utils

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"github.com/bsm/redislock"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"
)

var CountryCode = "IN"

func IsValidEmail(email string) bool {
	// Basic email validation regex pattern
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	regex := regexp.MustCompile(pattern)
	return regex.MatchString(email)
}

func ValidatePhoneNumber(phoneNumber, countryCode string) error {
	p, err := libphonenumber.Parse(phoneNumber, countryCode)
	if err != nil {
		return err // Phone number is invalid
	}

	if !libphonenumber.IsValidNumber(p) {
		return fmt.Errorf("phone number is not valid")
	}

	return nil // Phone number is valid for the specified country code
}

func ProcessValidationErrors(err error) map[string]string {

	validationErrors := err.(validator.ValidationErrors)

	errorResponse := make(map[string]string)

	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}

	return errorResponse
}

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

// returns slice removing duplicate elements
func UniqueSlice[T comparable](slice []T) []T {
	inResult := make(map[T]bool)
	var result []T
	for _, elm := range slice {
		if _, ok := inResult[elm]; !ok {
			// if not exists in map, append it, otherwise do nothing
			inResult[elm] = true
			result = append(result, elm)
		}
	}
	return result
}

// safely dereference pointer of type T, nil pointer return zero value or optional default
func DereferencePtr[T any](ptr *T, defaults ...T) T {
	var defaultValue T
	if len(defaults) > 0 {
		defaultValue = defaults[0]
	}
	if ptr == nil {
		return defaultValue
	}
	return *ptr
}

// ConvertToDate truncates t to a date (midnight) in the given timezone.
func ConvertToDate(t time.Time, timezone string) (time.Time, error) {
	if timezone == "" {
		timezone = "Asia/Kolkata"
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return t, err
	}
	localTime := t.In(location)

	dateOnly := time.Date(localTime.Year(), localTime.Month(), localTime.Day(), 0, 0, 0, 0, location)
	return dateOnly, nil
}

// Today returns the current date (midnight) in the back office timezone.
// Calculators take the date as a parameter so tests can fix it.
func Today() time.Time {
	today, _ := ConvertToDate(time.Now(), "")
	return today
}

// currency prefixes are ASCII so the PDF engine downstream never sees a
// Unicode glyph it can't encode
var asciiCurrencyPrefixes = map[string]string{
	"INR": "Rs.",
	"USD": "USD",
	"EUR": "EUR",
	"AED": "AED",
	"SGD": "SGD",
}

// FormatMoney renders an amount with its ASCII currency prefix, e.g. "Rs. 1200.50".
func FormatMoney(currencyCode string, amount decimal.Decimal) string {
	prefix, ok := asciiCurrencyPrefixes[strings.ToUpper(currencyCode)]
	if !ok {
		prefix = strings.ToUpper(currencyCode)
	}
	return prefix + " " + amount.StringFixed(2)
}

// AllocationLock serializes identifier allocation for one prefix across
// instances. Best-effort: the DB uniqueness constraint is still the backstop.
func AllocationLock(ctx context.Context, prefix string, moduleName string, functionName string) (*redislock.Lock, error) {
	logger := config.GetLogger()
	locker := config.GetRedisLock()
	if locker == nil {
		// Redis lock not initialized; uniqueness constraint + retry still applies.
		return nil, nil
	}
	lockKey := "alloc:" + prefix
	lock, err := locker.Obtain(ctx, lockKey, 30*time.Second, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 10),
	})
	if err == redislock.ErrNotObtained {
		config.LogError(logger, moduleName, functionName, "Could not obtain allocation lock", prefix, err)
		return nil, errors.New("could not obtain allocation lock")
	} else if err != nil {
		config.LogError(logger, moduleName, functionName, "Error obtaining allocation lock", prefix, err)
		return nil, err
	}
	return lock, nil
}
