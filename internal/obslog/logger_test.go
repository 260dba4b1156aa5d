package obslog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevelFallsBackToInfo(t *testing.T) {
	cases := map[string]bool{
		"debug":   true,
		"INFO":    true,
		" warn ":  true,
		"error":   true,
		"bogus":   false,
		"":        false,
	}
	for in, expectKnown := range cases {
		lvl := parseLevel(in)
		isInfo := lvl.String() == "INFO"
		if !expectKnown && !isInfo {
			t.Fatalf("parseLevel(%q) = %v, want fallback to info", in, lvl)
		}
	}
}

func TestGetInitializesLazily(t *testing.T) {
	defaultLogger = nil
	l := Get()
	if l == nil {
		t.Fatalf("Get() returned nil")
	}
	if Get() != l {
		t.Fatalf("Get() should return the same logger once initialized")
	}
}

func TestWithComponentAttachesField(t *testing.T) {
	var buf bytes.Buffer
	defaultLogger = slog.New(slog.NewTextHandler(&buf, nil))
	defer func() { defaultLogger = nil }()

	l := WithComponent("simulation")
	if l == nil {
		t.Fatalf("WithComponent returned nil")
	}
	l.Info("probe")
	if !strings.Contains(buf.String(), "component=simulation") {
		t.Fatalf("log line missing component field: %q", buf.String())
	}
}
