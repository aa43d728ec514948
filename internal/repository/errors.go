package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	pgUniqueViolation    = "23505"
	mysqlDuplicateEntry  = 1062
	sqliteUniqueFailed   = "unique constraint failed"
	genericDuplicateText = "duplicate key value"
)

// isUniqueViolation reports whether err is a unique constraint failure raised
// at commit time by any of the supported drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	// sqlite3 errors need cgo to be typed, match on the message
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, sqliteUniqueFailed) || strings.Contains(msg, genericDuplicateText)
}
