package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "nil", err: nil, want: false},
		{
			name: "pgx unique",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "idx_products_sku"},
			want: true,
		},
		{
			name:       "pgx unique matching constraint",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "idx_products_sku"},
			constraint: "idx_products_sku",
			want:       true,
		},
		{
			name:       "pgx unique other constraint",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "idx_inventories_product_warehouse"},
			constraint: "idx_products_sku",
			want:       false,
		},
		{
			name: "pq unique",
			err:  &pq.Error{Code: "23505", Constraint: "idx_products_sku"},
			want: true,
		},
		{
			name: "pgx foreign key is not unique",
			err:  &pgconn.PgError{Code: "23503"},
			want: false,
		},
		{
			name: "sqlite message",
			err:  errors.New("UNIQUE constraint failed: products.sku"),
			want: true,
		},
		{
			name: "wrapped pgx unique",
			err:  fmt.Errorf("insert product: %w", &pgconn.PgError{Code: "23505"}),
			want: true,
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err, tt.constraint); got != tt.want {
				t.Fatalf("IsUniqueViolation(%v, %q) = %v, want %v", tt.err, tt.constraint, got, tt.want)
			}
		})
	}
}

func TestIsIntegrityViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "pgx unique", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "pgx foreign key", err: &pgconn.PgError{Code: "23503"}, want: true},
		{name: "pgx check", err: &pgconn.PgError{Code: "23514"}, want: true},
		{name: "pq foreign key", err: &pq.Error{Code: "23503"}, want: true},
		{name: "sqlite foreign key", err: errors.New("FOREIGN KEY constraint failed"), want: true},
		{name: "sqlite check", err: errors.New("CHECK constraint failed: quantity"), want: true},
		{name: "other pg error", err: &pgconn.PgError{Code: "57014"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsIntegrityViolation(tt.err); got != tt.want {
				t.Fatalf("IsIntegrityViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
