package scan

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// runCommand executes an external tool and returns its stdout. A tool that
// is not installed yields empty output and no error, so the absence of a
// package manager is "nothing to report" rather than a scan failure. A
// present tool exiting non-zero is a real failure.
func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	if _, err := exec.LookPath(name); err != nil {
		return "", nil
	}
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%s exited with status %d", name, exitErr.ExitCode())
		}
		return "", fmt.Errorf("run %s: %w", name, err)
	}
	return string(output), nil
}

func nonEmptyLines(output string) []string {
	lines := strings.Split(output, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}
