package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestBannerContainsProgramAndDetail(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf)
	lg.Banner("robots-server", "listening on [::]:9999")
	out := buf.String()
	if !strings.Contains(out, "robots-server starting: listening on [::]:9999") {
		t.Fatalf("banner missing expected content: %q", out)
	}
}

func TestQueueDepthHumanizesCount(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf)
	lg.QueueDepth(3, 1204)
	out := buf.String()
	if !strings.Contains(out, "1,204 pending") {
		t.Fatalf("expected humanized count, got %q", out)
	}
}

func TestTurnDurationReportsOverBudget(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf)
	lg.TurnDuration(7, 500*time.Millisecond, 100*time.Millisecond)
	if !strings.Contains(buf.String(), "OVER") {
		t.Fatalf("expected OVER marker when turn exceeds budget, got %q", buf.String())
	}
}

func TestTurnDurationWithinBudget(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf)
	lg.TurnDuration(7, 50*time.Millisecond, 100*time.Millisecond)
	if strings.Contains(buf.String(), "OVER") {
		t.Fatalf("did not expect OVER marker, got %q", buf.String())
	}
}
