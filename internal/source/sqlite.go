package source

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// QuerySQLite runs a read-only query against a SQLite database and
// returns the result set as records, one map per row keyed by column
// name.
func QuerySQLite(dbPath, query string) (any, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	var records []any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = cellValue(values[i])
		}
		records = append(records, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if records == nil {
		records = []any{}
	}
	return records, nil
}

// cellValue maps driver types onto the shapes JSON decoding produces,
// so resolution and filtering behave the same for both sources.
func cellValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case int64:
		return float64(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return v
	}
}
