package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"eneba-loot-goblin/pkg/logger"
)

func TestCloseWithWarningLogsError(t *testing.T) {
	var buf bytes.Buffer
	logger.SetGlobal(logger.NewWriterLogger(&buf, "warn"))
	defer logger.Discard()

	if closeWithWarning("Redis", func() error { return errors.New("connection reset") }) {
		t.Fatalf("closeWithWarning: got=true want=false")
	}
	out := buf.String()
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "connection reset") {
		t.Fatalf("warning missing: %q", out)
	}
}

func TestCloseWithWarningSilentOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	logger.SetGlobal(logger.NewWriterLogger(&buf, "warn"))
	defer logger.Discard()

	if !closeWithWarning("журнал прогонов", func() error { return nil }) {
		t.Fatalf("closeWithWarning: got=false want=true")
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
