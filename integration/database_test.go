//go:build database

package integration

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// seedTables creates the contributor and SDG tables the sdg command reads.
func seedTables(t *testing.T, driver, connStr string, quote func(string) string) {
	t.Helper()
	db, err := sql.Open(driver, connStr)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	deposited := quote("Deposited (USD million current)")
	stmts := []string{
		fmt.Sprintf("CREATE TABLE by_contributor (%s VARCHAR(64), %s DOUBLE PRECISION)", quote("Contributor"), deposited),
		fmt.Sprintf("INSERT INTO by_contributor (%s, %s) VALUES ('Germany', 50), ('Japan', 20)", quote("Contributor"), deposited),
		fmt.Sprintf("CREATE TABLE sdg_count_by_country (%s VARCHAR(64), %s INTEGER)", quote("Country"), quote("SDG_Count")),
		fmt.Sprintf("INSERT INTO sdg_count_by_country (%s, %s) VALUES ('Germany', 3)", quote("Country"), quote("SDG_Count")),
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
}

// TestFundboardWithMySQL tests the fundboard CLI with a MySQL source.
func TestFundboardWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "fund",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/fund", host, port.Port())
	seedTables(t, "mysql", connStr, func(s string) string { return "`" + s + "`" })

	env := []string{
		"FUNDBOARD_SOURCE=mysql",
		"FUNDBOARD_SOURCE_DB_CONNECT=" + connStr,
	}
	out, err := runFundboard(t, env, "sdg", "--output", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Germany,3")
	assert.Contains(t, out, "Japan,0")

	out, err = runFundboard(t, env, "datasets", "show", "by_contributor", "--color", "no")
	require.NoError(t, err)
	assert.Contains(t, out, "mysql database")
}

// TestFundboardWithPostgres tests the fundboard CLI with a PostgreSQL source.
func TestFundboardWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	seedTables(t, "pgx", connStr, func(s string) string { return `"` + s + `"` })

	out, err := runFundboard(t, nil, "sdg", "--output", "csv", "--source", "postgresql", "--source-db-connect", connStr)
	require.NoError(t, err)
	assert.Contains(t, out, "Germany,3")
	assert.Contains(t, out, "Japan,0")
}
