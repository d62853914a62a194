package sqldb

import (
	"strings"
)

// Dialect selects placeholder syntax for the underlying driver
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// rebind rewrites $N placeholders into ?N for SQLite
func (d Dialect) rebind(query string) string {
	if d != SQLite {
		return query
	}
	return strings.ReplaceAll(query, "$", "?")
}

// escapeLike escapes LIKE wildcards so the prefix matches literally
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
