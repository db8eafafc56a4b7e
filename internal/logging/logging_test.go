package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestFromContextDefault(t *testing.T) {
	if FromContext(context.Background()) != log.Default() {
		t.Fatal("expected default logger")
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Level(true))
	ctx := WithLogger(context.Background(), l)
	got := FromContext(ctx)
	if got != l {
		t.Fatal("logger not carried by context")
	}
	got.Debug("hello", "session", "abc")
	if !strings.Contains(buf.String(), "hello") || !strings.Contains(buf.String(), "session=abc") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestLevel(t *testing.T) {
	if Level(false) != log.InfoLevel || Level(true) != log.DebugLevel {
		t.Fatal("unexpected level mapping")
	}
	var buf bytes.Buffer
	New(&buf, Level(false)).Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug written at info level: %q", buf.String())
	}
}
