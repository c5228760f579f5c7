// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"

	domainerrors "loyaltysync/internal/domain/errors"
	"loyaltysync/internal/errors"
)

// classifyStoreError maps a failed store call onto the caller-facing taxonomy.
// Deadline hits surface as a distinct, retryable timeout; everything else is
// an opaque storage failure whose detail stays server-side.
func classifyStoreError(err error, detail string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domainerrors.ErrStoreTimeout.WrapMessage(detail)
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return domainerrors.NewStoreExecuteError(err, detail)
}
