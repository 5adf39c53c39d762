package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestWrap_Nil(t *testing.T) {
	if err := Wrap("op", nil); err != nil {
		t.Fatalf("Expected nil, got %v", err)
	}
}

func TestWrap_PqError(t *testing.T) {
	cause := &pq.Error{Code: "22P02", Message: "invalid input syntax for type integer", Detail: "abc"}
	err := Wrap("flavor_get", cause)

	dbErr, ok := AsDatabaseError(err)
	if !ok {
		t.Fatalf("Expected *DatabaseError, got %T", err)
	}
	if dbErr.Code != "22P02" || dbErr.Detail != "abc" || dbErr.Op != "flavor_get" {
		t.Errorf("Unexpected fields: %+v", dbErr)
	}
	if !dbErr.IsClientError() {
		t.Errorf("Expected 22P02 to be a client error")
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected wrapped error to unwrap to the driver error")
	}
}

func TestWrap_PgconnError(t *testing.T) {
	err := Wrap("flavor_insert", &pgconn.PgError{Code: "23505", Message: "duplicate key"})

	dbErr, ok := AsDatabaseError(err)
	if !ok {
		t.Fatalf("Expected *DatabaseError, got %T", err)
	}
	if dbErr.Code != "23505" || !dbErr.IsClientError() {
		t.Errorf("Unexpected classification: %+v", dbErr)
	}
}

func TestWrap_ConnectionError(t *testing.T) {
	err := Wrap("flavor_list", &pq.Error{Code: "08006", Message: "connection failure"})

	dbErr, _ := AsDatabaseError(err)
	if dbErr.IsClientError() {
		t.Errorf("Connection failures must not be client errors")
	}
	want := "database error during flavor_list (SQLSTATE 08006): pq: connection failure"
	if dbErr.Error() != want {
		t.Errorf("Expected %q, got %q", want, dbErr.Error())
	}
}

func TestWrap_KeepsExistingDatabaseError(t *testing.T) {
	first := Wrap("inner", errors.New("boom"))
	second := Wrap("outer", first)

	dbErr, _ := AsDatabaseError(second)
	if dbErr.Op != "inner" {
		t.Errorf("Expected op to stay inner, got %s", dbErr.Op)
	}
}
