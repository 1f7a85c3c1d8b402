package report

import (
	"fmt"
	"strings"
)

// RenderError reports an unrecoverable layout problem. The artifact is still
// produced with the offending blocks truncated and visibly marked; Warnings
// lists every truncation that occurred.
type RenderError struct {
	Warnings []string
	Err      error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render failed: %v", e.Err)
	}
	return fmt.Sprintf("render degraded: %s", strings.Join(e.Warnings, "; "))
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
