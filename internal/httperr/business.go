package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Stable business error codes surfaced to callers.
const (
	CodeUnauthorized         = "unauthorized"
	CodeForbidden            = "forbidden"
	CodeNotFound             = "not_found"
	CodeSlotUnavailable      = "slot_unavailable"
	CodeInvalidTransition    = "invalid_transition"
	CodeInvalidRequest       = "invalid_request"
	CodeInvalidOrExpiredCode = "invalid_or_expired_code"
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

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

// IsUniqueConflict reports whether err is the postgres unique-violation
// raised by the partial anti-double-booking index.
func IsUniqueConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
