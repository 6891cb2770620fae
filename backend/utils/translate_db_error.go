package utils

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// TranslateDBError turns a database error into a message that can be shown
// to the user.
func TranslateDBError(err error) string {
	if err == nil {
		return ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if strings.Contains(pgErr.ConstraintName, "email") || strings.Contains(pgErr.Message, "email") {
				return "Email already exists"
			}
			return "Duplicate value, please use another"
		case "23503":
			return "This record is referenced by another table"
		case "23502":
			return "Some required fields are missing"
		case "22P02":
			return "Invalid data format"
		case "42703":
			return "Column not found in database"
		}
		return "A database error occurred"
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "Record not found"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return "Duplicate value, please use another"
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timeout"
	case errors.Is(err, context.Canceled):
		return "Request was cancelled"
	}

	return "A database error occurred"
}
