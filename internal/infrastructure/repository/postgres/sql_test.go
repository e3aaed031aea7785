package postgres

import (
	"database/sql"
	"errors"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("sql.ErrNoRows must be treated as not found")
	}
	if isNotFound(errors.New("connection refused")) {
		t.Fatal("other errors must not be treated as not found")
	}
	if isNotFound(nil) {
		t.Fatal("nil must not be treated as not found")
	}
}

func TestInt64SliceToAny(t *testing.T) {
	out := int64SliceToAny([]int64{3, 1, 2})
	if len(out) != 3 {
		t.Fatalf("expected 3 values, got %d", len(out))
	}
	if out[0].(int64) != 3 || out[2].(int64) != 2 {
		t.Fatalf("unexpected values: %v", out)
	}
}
