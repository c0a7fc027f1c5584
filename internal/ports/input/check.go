package input

import (
	"context"

	"i18nlint/internal/domain/entities"
)

type CheckUseCase interface {
	// Run executes every check and returns the report. The error is non-nil
	// only when the run itself could not proceed; failed checks are reported
	// in the returned report.
	Run(ctx context.Context) (*entities.Report, error)
}
