package postgres

import "database/sql"

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// chunk splits rows so multi-row inserts stay under the wire
// protocol's parameter limit.
func chunk[T any](rows []T, size int) [][]T {
	if size <= 0 {
		size = 500
	}
	out := make([][]T, 0, len(rows)/size+1)
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, rows[start:end])
	}
	return out
}
