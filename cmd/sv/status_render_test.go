package main

import (
	"strings"
	"testing"
)

func TestRenderStatusLine(t *testing.T) {
	line := renderStatusLine("Vault directory", statusOK, "/tmp/vault (read/write ok)", false)
	if !strings.Contains(line, "[OK]") || !strings.Contains(line, "Vault directory:") {
		t.Fatalf("unexpected line: %q", line)
	}
	if strings.Contains(line, ansiGreen) {
		t.Fatalf("uncolored line carries ANSI codes: %q", line)
	}

	colored := renderStatusLine("Scanner: npm", statusError, "binary not found", true)
	if !strings.HasPrefix(colored, ansiRed) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected red wrapping: %q", colored)
	}
}

func TestStatusKindLabels(t *testing.T) {
	cases := map[statusKind]string{
		statusInfo:  "INFO",
		statusOK:    "OK",
		statusWarn:  "WARN",
		statusError: "ERROR",
	}
	for kind, want := range cases {
		if got := statusKindLabel(kind); got != want {
			t.Fatalf("label(%d) = %q, want %q", kind, got, want)
		}
	}
}
