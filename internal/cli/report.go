package cli

import (
	"fmt"
	"strings"

	"github.com/natefinch/atomic"
)

// FormatReport renders a run result as a plain text report.
func FormatReport(result RunResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "scenario: %s\n", result.Scenario)
	fmt.Fprintf(&b, "steps:    %d\n", len(result.Steps))
	fmt.Fprintf(&b, "failed:   %d\n", result.Failed)
	b.WriteString("\n")

	for _, step := range result.Steps {
		status := "ok"
		if !step.Pass {
			status = "FAIL"
		}

		fmt.Fprintf(&b, "%3d. %-9s %-4s", step.Index+1, step.Op.Op, status)

		if step.Op.Op == "construct" || step.Op.Op == "expect" || step.Op.Op == "refresh" {
			fmt.Fprintf(&b, "  {id:%d health:%d}", step.Op.ID, step.Op.Health)
		}

		if step.Op.WantErr != "" {
			fmt.Fprintf(&b, "  want_err=%s", step.Op.WantErr)
		}

		if step.Detail != "" {
			fmt.Fprintf(&b, "  (%s)", step.Detail)
		}

		b.WriteString("\n")
	}

	b.WriteString("\n")

	if result.Passed() {
		b.WriteString("result: PASS\n")
	} else {
		b.WriteString("result: FAIL\n")
	}

	return b.String()
}

// WriteReport writes the report to path atomically, so a reader never
// observes a partially written report.
func WriteReport(path string, result RunResult) error {
	err := atomic.WriteFile(path, strings.NewReader(FormatReport(result)))
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}
