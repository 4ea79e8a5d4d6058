package export

import (
	"errors"
	"fmt"
)

// Pipeline-level errors. Resource-level failures never surface here; they
// are recovered locally with safe defaults and logged.
var (
	// ErrNoExportableContent means the scene contains zero renderable
	// objects. It is reported before any file I/O happens.
	ErrNoExportableContent = errors.New("scene contains no renderable content to export")
)

// BudgetExceededError is returned when the weighted scene complexity is
// strictly above the limit. It carries the full report so callers can show
// both "why" and "how close".
type BudgetExceededError struct {
	Report Report
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("scene exceeds the complexity budget: %s (%s)", e.Report.Line(), e.Report.Breakdown())
}

// UnsupportedContentError is returned when unsupported content was found and
// not resolved via remediation or explicitly ignored.
type UnsupportedContentError struct {
	Findings []Finding
	Report   Report
}

func (e *UnsupportedContentError) Error() string {
	return SummaryLine(findingCategories(e.Findings))
}
