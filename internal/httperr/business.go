package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ErrBookingConflict means the slot was taken between availability and commit.
// Callers should recompute availability and retry.
var ErrBookingConflict = ErrBusiness("booking_conflict")

func IsBookingConflict(err error) bool {
	return IsBusiness(err, "booking_conflict")
}

// ======================================================
// Validation
// ======================================================

type ValidationError struct {
	Field string
	Code  string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Code
	}
	return e.Field + ": " + e.Code
}

func ErrValidation(field, code string) error {
	return ValidationError{Field: field, Code: code}
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

func IsValidationCode(err error, code string) bool {
	var ve ValidationError
	return errors.As(err, &ve) && ve.Code == code
}

// ======================================================
// Store constraint violations
// ======================================================

// IsUniqueViolation reports a unique (23505) or exclusion (23P01) constraint
// violation, whether gorm translated it or not.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}
	return false
}

func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}
