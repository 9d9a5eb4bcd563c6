package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/schema"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// SQLFetcher reads each dataset from the table of the same name.
// It never writes; the tables are produced by the upstream export job.
type SQLFetcher struct {
	db      *sql.DB
	backend schema.SourceBackend
}

var _ contract.Fetcher = &SQLFetcher{} // Compile-time check

// NewSQLFetcher opens and pings the database for the given backend.
func NewSQLFetcher(backend schema.SourceBackend, connStr string) (*SQLFetcher, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteSource:
		db, err = sql.Open("sqlite", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite source at %q: %w", connStr, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLSource:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL source: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLSource:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=secret dbname=fund
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL source: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, fmt.Errorf("unsupported SQL source: %s. Must be sqlite, mysql, or postgresql", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	return &SQLFetcher{db: db, backend: backend}, nil
}

// Fetch selects every row of the dataset's table.
func (f *SQLFetcher) Fetch(ctx context.Context, name schema.DatasetName) (schema.Dataset, error) {
	if err := contract.ValidateDatasetName(name); err != nil {
		return nil, err
	}
	table := string(name)
	if err := validateTableName(table); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT * FROM %s", quoteTableName(table, f.backend))
	rows, err := f.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read columns: %w", name, err)
	}

	ds := schema.Dataset{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("fetch %s: scan row: %w", name, err)
		}
		rec := make(schema.Record, len(cols))
		for i, col := range cols {
			rec[col] = normalizeValue(values[i])
		}
		ds = append(ds, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	return ds, nil
}

// Close closes the underlying DB connection.
func (f *SQLFetcher) Close() error {
	if f.db != nil {
		return f.db.Close()
	}
	return nil
}

// normalizeValue maps driver values onto the JSON value set used by records.
// JSON array text, as stored for Entries columns, is decoded into a list.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case nil, float64, bool:
		return val
	case string:
		return normalizeText(val)
	case []byte:
		return normalizeText(string(val))
	case int64:
		return float64(val)
	case int32:
		return float64(val)
	case int:
		return float64(val)
	case float32:
		return float64(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}

func normalizeText(s string) any {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > 1 && trimmed[0] == '[' && trimmed[len(trimmed)-1] == ']' {
		var list []any
		if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
			return list
		}
	}
	return s
}
