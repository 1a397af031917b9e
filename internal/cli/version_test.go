package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestResolveVersionInfo_LdflagsOverride(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer func() { version, commit, date = origV, origC, origD }()

	version, commit, date = "1.2.3", "abc123", "2024-01-01"
	v, c, d := resolveVersionInfo()
	if v != "1.2.3" || c != "abc123" || d != "2024-01-01" {
		t.Errorf("resolveVersionInfo() = %q, %q, %q; want ldflags values", v, c, d)
	}
}

func TestResolveVersionInfo_DevFallback(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer func() { version, commit, date = origV, origC, origD }()

	version, commit, date = "dev", "unknown", "unknown"
	v, c, d := resolveVersionInfo()

	if v == "" {
		t.Error("version should not be empty")
	}
	// In a test binary, ReadBuildInfo returns test module info.
	t.Logf("resolved: version=%s commit=%s date=%s", v, c, d)
}

func TestWriteVersionInfo(t *testing.T) {
	origV := version
	defer func() { version = origV }()
	version = "1.2.3"

	var buf bytes.Buffer
	writeVersionInfo(&buf)

	out := buf.String()
	if !strings.HasPrefix(out, "codetest 1.2.3 (") {
		t.Errorf("unexpected version line: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected a single line, got %q", out)
	}
}
