package database

import "database/sql"

// nullableInt64 converts an int64 to sql.NullInt64 for optional
// foreign keys. Values <= 0 are treated as NULL.
func nullableInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v > 0}
}

// toNullableArg converts a pointer to an interface{} suitable for SQL
// args. Returns nil if pointer is nil.
func toNullableArg[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// fromNullInt64 converts a scanned nullable column back to a pointer.
func fromNullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
