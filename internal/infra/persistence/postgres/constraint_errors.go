package postgres

import (
	"strings"

	"usersvc/internal/errors"

	"gorm.io/gorm"
)

// isUniqueConstraintViolation matches both the translated GORM error and the raw
// PostgreSQL unique_violation (23505) for connections opened without TranslateError.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "23505") ||
		strings.Contains(errMsg, "duplicate key")
}
