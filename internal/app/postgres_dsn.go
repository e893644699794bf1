package app

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxTracedStatementBytes = 512

var (
	statementWhitespace = regexp.MustCompile(`\s+`)
	// Single-quoted literals carry player names and emails from seed and
	// ad-hoc statements; bound $n parameters never reach the formatter.
	statementLiteral = regexp.MustCompile(`'(?:[^']|'')*'`)
)

// postgresTarget is the parsed DB_URL the server connects with.
type postgresTarget struct {
	dsn    string
	dbName string
	host   string
}

// parsePostgresTarget accepts both URL and key=value DSNs. URL-style DSNs get
// disable_prepared_binary_result=yes unless the operator already set it,
// which keeps lib/pq working behind PgBouncer in transaction mode.
func parsePostgresTarget(raw string, disablePreparedBinary bool) postgresTarget {
	raw = strings.TrimSpace(raw)
	target := postgresTarget{dsn: raw}

	parsed, err := url.Parse(raw)
	if err == nil && parsed.Scheme != "" {
		target.host = parsed.Hostname()
		target.dbName = strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if disablePreparedBinary {
			query := parsed.Query()
			if query.Get("disable_prepared_binary_result") == "" {
				query.Set("disable_prepared_binary_result", "yes")
				parsed.RawQuery = query.Encode()
				target.dsn = parsed.String()
			}
		}
		return target
	}

	for _, pair := range strings.Fields(raw) {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"'`)
		switch key {
		case "dbname":
			target.dbName = value
		case "host":
			target.host = value
		}
	}
	return target
}

// formatStatementForTrace collapses whitespace, masks string literals and
// caps the statement before it is attached to a span.
func formatStatementForTrace(statement string) string {
	statement = strings.TrimSpace(statement)
	if statement == "" {
		return statement
	}

	statement = statementLiteral.ReplaceAllString(statement, "'?'")
	statement = statementWhitespace.ReplaceAllString(statement, " ")
	if len(statement) <= maxTracedStatementBytes {
		return statement
	}

	cut := maxTracedStatementBytes
	for cut > 0 && !utf8.RuneStart(statement[cut]) {
		cut--
	}
	return statement[:cut] + "..."
}
