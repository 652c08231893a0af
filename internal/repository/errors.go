// Package repository provides data access for the userbase application.
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Repository-level sentinel errors.
// These are distinct from application errors but are mapped to them in
// the service layer.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey indicates a unique constraint violation.
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrDataTooLong indicates data exceeds column capacity.
	ErrDataTooLong = errors.New("data too long for column")
)

// ParseDBError converts MySQL-specific errors to repository errors.
// This provides a consistent error interface across the repository layer.
func ParseDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	// Try type assertion for MySQL-specific errors first (more robust)
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1062: // ER_DUP_ENTRY
			return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
		case 1406: // ER_DATA_TOO_LONG
			return fmt.Errorf("%w: %w", ErrDataTooLong, err)
		}
	}

	// Fallback to string matching for non-MySQL errors or unhandled cases
	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "Duplicate entry"):
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	case strings.Contains(errStr, "Data too long"):
		return fmt.Errorf("%w: %w", ErrDataTooLong, err)
	default:
		return err
	}
}
