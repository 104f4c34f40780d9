package repository

import (
	"errors"
	"strings"

	"socialnet/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
)

const pgUniqueViolation = "23505"

var uniqueUserFields = []string{"username", "email"}

// isUniqueConstraintError reports whether err is a unique-index violation from
// postgres, sqlite or MongoDB.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

// conflictField extracts which unique user field collided, or "" when the
// driver error does not say.
func conflictField(err error) string {
	var text string
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		text = pgErr.ConstraintName + " " + pgErr.Detail
	} else {
		text = err.Error()
	}
	text = strings.ToLower(text)

	for _, f := range uniqueUserFields {
		// idx_users_email (postgres/mongo index), users.email (sqlite), (email) (postgres detail)
		if strings.Contains(text, "idx_users_"+f) ||
			strings.Contains(text, "users."+f) ||
			strings.Contains(text, "("+f+")") {
			return f
		}
	}
	return ""
}

// mapUserWriteError converts a driver error from a user insert/update.
func mapUserWriteError(err error) error {
	if isUniqueConstraintError(err) {
		if field := conflictField(err); field != "" {
			return models.NewConflictError("User", field, err)
		}
		return &models.AppError{Code: models.CodeConflict, Message: "User already exists", Err: err}
	}
	return models.NewInternalError(err)
}

// passThrough keeps AppErrors produced inside a transaction and wraps anything else.
func passThrough(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(err)
}
