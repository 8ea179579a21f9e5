package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/org-directory/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	preparedBinaryParam = "disable_prepared_binary_result"
	maxTracedQueryBytes = 512
)

// dbTarget is the connection string the pool and the migrator dial plus the
// database name reported on spans.
type dbTarget struct {
	url  string
	name string
}

func resolveDBTarget(cfg config.Config) dbTarget {
	raw := strings.TrimSpace(cfg.DBURL)
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		// key=value DSNs pass through untouched.
		return dbTarget{url: raw, name: dsnValue(raw, "dbname")}
	}

	if cfg.DBDisablePreparedBinary {
		query := parsed.Query()
		if query.Get(preparedBinaryParam) == "" {
			query.Set(preparedBinaryParam, "yes")
			parsed.RawQuery = query.Encode()
		}
	}
	return dbTarget{
		url:  parsed.String(),
		name: strings.TrimPrefix(parsed.Path, "/"),
	}
}

func dsnValue(dsn, key string) string {
	for _, token := range strings.Fields(dsn) {
		k, v, ok := strings.Cut(token, "=")
		if ok && k == key {
			return strings.Trim(v, `"'`)
		}
	}
	return ""
}

// DatabaseURL is cfg.DBURL with the driver flags the pool and the migrator
// both expect.
func DatabaseURL(cfg config.Config) string {
	return resolveDBTarget(cfg).url
}

// OpenDB opens an instrumented Postgres pool sized from cfg and checks it is
// reachable.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	target := resolveDBTarget(cfg)
	db, err := otelsqlx.Open("postgres", target.url,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(target.name),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// traceQuery collapses whitespace so multi-line builder output reads as one
// line on a span, and caps it without splitting a rune.
func traceQuery(query string) string {
	collapsed := strings.Join(strings.Fields(query), " ")
	if len(collapsed) <= maxTracedQueryBytes {
		return collapsed
	}
	cut := maxTracedQueryBytes
	for cut > 0 && !utf8.RuneStart(collapsed[cut]) {
		cut--
	}
	return collapsed[:cut] + "..."
}
