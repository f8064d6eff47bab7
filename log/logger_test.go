package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)

	logger := New("test")
	logger.Info("hidden")
	logger.Notice("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info messages to be filtered at the default level; got %q", out)
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "[test]") {
		t.Fatalf("expected notice message tagged with the module name; got %q", out)
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("value: %d", 42)
	if !strings.Contains(buf.String(), "value: 42") {
		t.Fatalf("expected debug message after raising verbosity; got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	specs := map[string]Level{
		"debug":   Debug,
		"INFO":    Info,
		"notice":  Notice,
		"warn":    Warning,
		"warning": Warning,
		"error":   Error,
	}
	for name, exp := range specs {
		got, err := ParseLevel(name)
		if err != nil {
			t.Fatal(err)
		}
		if got != exp {
			t.Fatalf("expected level for %q to be %d; got %d", name, exp, got)
		}
	}

	expError := `log: unknown level "loud"`
	_, err := ParseLevel("loud")
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}
