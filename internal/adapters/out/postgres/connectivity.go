package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// FailureKind classifies why the job store cannot be used.
type FailureKind string

const (
	FailureConfig       FailureKind = "config"
	FailureAuth         FailureKind = "auth"
	FailureMissingTable FailureKind = "missing_table"
	FailureUnreachable  FailureKind = "unreachable"
	FailureUnknown      FailureKind = "unknown"
)

// SQLSTATE codes the checker recognizes.
const (
	invalidPassword          = "28P01"
	invalidAuthorization     = "28000"
	insufficientPrivilege    = "42501"
	undefinedTable           = "42P01"
	invalidSchemaName        = "3F000"
	invalidCatalogName       = "3D000"
	cannotConnectNow         = "57P03"
	connectionExceptionClass = "08"
)

// ConnectivityError is a classified connectivity failure with an operator hint.
type ConnectivityError struct {
	Kind  FailureKind
	Hint  string
	Cause error
}

func (e *ConnectivityError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("job store %s: %s", e.Kind, e.Hint)
	}
	return fmt.Sprintf("job store %s: %s (cause: %v)", e.Kind, e.Hint, e.Cause)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Cause
}

// ConnectivityChecker probes the job store by reading one id from the jobs
// table of the configured schema.
type ConnectivityChecker struct {
	db       *gorm.DB
	settings Settings
}

// NewConnectivityChecker creates a checker. db may be nil when the connection
// could not be opened; Check then reports the settings or the open error.
func NewConnectivityChecker(db *gorm.DB, settings Settings) *ConnectivityChecker {
	return &ConnectivityChecker{
		db:       db,
		settings: settings,
	}
}

// Check returns nil when the store answers, a *ConnectivityError otherwise.
func (c *ConnectivityChecker) Check(ctx context.Context) error {
	if missing := c.settings.Missing(); len(missing) > 0 {
		return &ConnectivityError{
			Kind: FailureConfig,
			Hint: "missing database configuration: " + strings.Join(missing, ", ") + "; check your .env file",
		}
	}
	if c.db == nil {
		return &ConnectivityError{Kind: FailureConfig, Hint: "database connection was not opened"}
	}

	var ids []uuid.UUID
	query := "SELECT id FROM " + c.settings.QualifiedTable("jobs") + " LIMIT 1"
	if err := c.db.WithContext(ctx).Raw(query).Scan(&ids).Error; err != nil {
		return Classify(err)
	}
	return nil
}

// Classify maps a driver or network error to a *ConnectivityError.
func Classify(err error) *ConnectivityError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == invalidPassword || pgErr.Code == invalidAuthorization || pgErr.Code == insufficientPrivilege:
			return &ConnectivityError{Kind: FailureAuth, Hint: "authentication failed; check DB_USER and DB_PASSWORD", Cause: err}
		case pgErr.Code == undefinedTable:
			return &ConnectivityError{Kind: FailureMissingTable, Hint: `table "jobs" does not exist; check that migrations were applied`, Cause: err}
		case pgErr.Code == invalidSchemaName:
			return &ConnectivityError{Kind: FailureMissingTable, Hint: "schema does not exist; check DB_SCHEMA and that migrations were applied", Cause: err}
		case pgErr.Code == invalidCatalogName:
			return &ConnectivityError{Kind: FailureConfig, Hint: "database does not exist; check DB_NAME", Cause: err}
		case pgErr.Code == cannotConnectNow || strings.HasPrefix(pgErr.Code, connectionExceptionClass):
			return &ConnectivityError{Kind: FailureUnreachable, Hint: "database is not accepting connections", Cause: err}
		}
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	var connectErr *pgconn.ConnectError
	switch {
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &opErr),
		errors.As(err, &dnsErr):
		return &ConnectivityError{Kind: FailureUnreachable, Hint: "could not reach the database; check DB_HOST and DB_PORT", Cause: err}
	case errors.As(err, &connectErr):
		return &ConnectivityError{Kind: FailureUnreachable, Hint: "could not connect to the database", Cause: err}
	}

	return &ConnectivityError{Kind: FailureUnknown, Hint: "unexpected database error", Cause: err}
}
