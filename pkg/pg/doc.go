// Package pg opens the Postgres pool, applies embedded goose migrations and
// classifies driver errors.
//
// The connection string is chosen by DB_KIND: "url" reads PG_CONN_URL,
// "params" assembles it from PG_HOST, PG_PORT, PG_USER, PG_PASSWORD,
// PG_DATABASE and PG_SSLMODE.
package pg
