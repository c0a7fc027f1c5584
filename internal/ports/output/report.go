package output

import (
	"io"

	"i18nlint/internal/domain/entities"
)

// ReportWriter renders a finished report.
type ReportWriter interface {
	Write(w io.Writer, report *entities.Report) error
}
