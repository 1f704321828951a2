package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestFlushOrdering(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	go w.Run()

	w.Warning("first")
	w.Warning("second")
	w.Flush()

	out := buf.String()
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Fatalf("expected both lines flushed, got %q", out)
	}
	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Fatalf("expected issue order preserved, got %q", out)
	}

	w.FlushAndShutdown()
}

func TestAccessibleModeFormatting(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	w.SetAccessible(true)
	go w.Run()

	w.Info(false, "hidden in accessible mode")
	w.Info(true, "visible info")
	w.Warning("a warning")
	w.Flush()

	out := buf.String()
	if strings.Contains(out, "hidden in accessible mode") {
		t.Fatalf("non-accessible info should be dropped, got %q", out)
	}
	if !strings.Contains(out, "Info: visible info") {
		t.Fatalf("expected accessible info prefix, got %q", out)
	}
	if !strings.Contains(out, "Warning: a warning") {
		t.Fatalf("expected accessible warning prefix, got %q", out)
	}

	w.FlushAndShutdown()
}

func TestQuietModeDropsInfoButKeepsWarnings(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	w.SetQuiet(true)
	go w.Run()

	w.Info(true, "routine progress")
	w.Warning("still surfaced")
	w.Flush()

	out := buf.String()
	if strings.Contains(out, "routine progress") {
		t.Fatalf("expected info dropped in quiet mode, got %q", out)
	}
	if !strings.Contains(out, "still surfaced") {
		t.Fatalf("expected warning to survive quiet mode, got %q", out)
	}

	w.FlushAndShutdown()
}

func TestBracketedFormattingOutsideAccessibleMode(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	go w.Run()

	w.Info(false, "plain info")
	w.Warning("plain warning")
	w.Flush()

	out := buf.String()
	if !strings.Contains(out, "[INFO] plain info") {
		t.Fatalf("expected bracketed info, got %q", out)
	}
	if !strings.Contains(out, "[WARNING] plain warning") {
		t.Fatalf("expected bracketed warning, got %q", out)
	}

	w.FlushAndShutdown()
}
