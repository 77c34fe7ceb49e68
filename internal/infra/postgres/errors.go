package postgres

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aliskhannn/factdrill/internal/domain/entities"
)

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeAdminShutdown        = "57P01"
	codeCannotConnectNow     = "57P03"
	classConnectionException = "08"
)

// Classify tags err with entities.ErrConcurrencyConflict or
// entities.ErrStoreUnavailable when the failure is transient contention or
// lost connectivity. Other errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeSerializationFailure, pgErr.Code == codeDeadlockDetected:
			return fmt.Errorf("%w: %w", entities.ErrConcurrencyConflict, err)
		case strings.HasPrefix(pgErr.Code, classConnectionException),
			pgErr.Code == codeAdminShutdown,
			pgErr.Code == codeCannotConnectNow:
			return fmt.Errorf("%w: %w", entities.ErrStoreUnavailable, err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", entities.ErrStoreUnavailable, err)
	}

	// pgxpool reports a closed pool with a plain error.
	if strings.Contains(err.Error(), "closed pool") {
		return fmt.Errorf("%w: %w", entities.ErrStoreUnavailable, err)
	}

	return err
}
