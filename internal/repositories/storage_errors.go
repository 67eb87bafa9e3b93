package repositories

import (
	"errors"
	"strings"

	"customerapi/internal/apperrors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"

	mysqlDuplicateEntry = 1062
	mysqlColumnNotNull  = 1048
)

// classify turns driver errors into apperrors storage errors. Unknown
// errors become storage errors without a violation.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Storage(apperrors.ViolationUnique, "", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.Storage(apperrors.ViolationUnique, columnFromConstraint(pgErr.ConstraintName), err)
		case pgNotNullViolation:
			return apperrors.Storage(apperrors.ViolationNotNull, pgErr.ColumnName, err)
		}
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return apperrors.Storage(apperrors.ViolationUnique, columnFromMessage(sqliteErr.Error()), err)
		case sqlite3.ErrConstraintNotNull:
			return apperrors.Storage(apperrors.ViolationNotNull, columnFromMessage(sqliteErr.Error()), err)
		}
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlDuplicateEntry:
			return apperrors.Storage(apperrors.ViolationUnique, "", err)
		case mysqlColumnNotNull:
			return apperrors.Storage(apperrors.ViolationNotNull, "", err)
		}
	}

	return apperrors.Storage(apperrors.ViolationNone, "", err)
}

// columnFromConstraint maps GORM's index naming (idx_customers_email) to the column.
func columnFromConstraint(name string) string {
	if i := strings.LastIndex(name, "_"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// columnFromMessage extracts "email" from "UNIQUE constraint failed: customers.email".
func columnFromMessage(msg string) string {
	i := strings.LastIndex(msg, ".")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(msg[i+1:])
}
