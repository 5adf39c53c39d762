package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// DatabaseError is any failure reported by the backend while executing a
// statement. Code holds the SQLSTATE when the driver exposes one.
type DatabaseError struct {
	Op     string
	Code   string
	Detail string
	Err    error
}

func (e *DatabaseError) Error() string {
	var b strings.Builder
	b.WriteString("database error")
	if e.Op != "" {
		b.WriteString(" during ")
		b.WriteString(e.Op)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " (SQLSTATE %s)", e.Code)
	}
	b.WriteString(": ")
	b.WriteString(e.message())
	return b.String()
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

func (e *DatabaseError) message() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

// IsClientError reports whether the backend rejected the statement because
// of the values it was given: SQLSTATE class 22 (data exception, e.g. an
// id that is not an integer) or 23 (integrity constraint violation).
func (e *DatabaseError) IsClientError() bool {
	return strings.HasPrefix(e.Code, "22") || strings.HasPrefix(e.Code, "23")
}

// Wrap turns a driver error into a *DatabaseError. nil stays nil and an
// existing *DatabaseError is returned untouched.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		return err
	}

	out := &DatabaseError{Op: op, Err: err}

	var pqErr *pq.Error
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pqErr):
		out.Code = string(pqErr.Code)
		out.Detail = pqErr.Detail
	case errors.As(err, &pgErr):
		out.Code = pgErr.Code
		out.Detail = pgErr.Detail
	}
	return out
}

// AsDatabaseError unwraps err into a *DatabaseError when it carries one.
func AsDatabaseError(err error) (*DatabaseError, bool) {
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		return dbErr, true
	}
	return nil, false
}
