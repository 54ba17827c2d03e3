package database

import (
	"fmt"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsExpr is a case-insensitive substring condition on col that
// works on both Postgres and SQLite. Pair it with ContainsPattern.
func ContainsExpr(col string) string {
	return fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col)
}

// ContainsPattern escapes LIKE wildcards in s and wraps it in %...%.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
