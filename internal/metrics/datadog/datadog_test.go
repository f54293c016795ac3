package datadog

import (
	"sort"
	"testing"

	"tablemill/internal/metrics"
)

func TestNewBackend_RequiresAddr(t *testing.T) {
	t.Parallel()

	if _, err := NewBackend(Config{}); err == nil {
		t.Fatalf("expected error for empty Addr")
	}
}

func TestLabelsToTags(t *testing.T) {
	t.Parallel()

	got := labelsToTags(metrics.Labels{"job": "invoices", "status": "processed"})
	sort.Strings(got)

	want := []string{"job:invoices", "status:processed"}
	if len(got) != len(want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tags = %v, want %v", got, want)
		}
	}

	if tags := labelsToTags(nil); tags != nil {
		t.Fatalf("labelsToTags(nil) = %v, want nil", tags)
	}
}

// TestNilClientIsSafe verifies that a zero-value backend drops observations
// instead of panicking.
func TestNilClientIsSafe(t *testing.T) {
	t.Parallel()

	b := &Backend{}
	b.IncCounter("pipeline_rows_total", 1, metrics.Labels{"kind": "master"})
	b.ObserveHistogram("pipeline_step_duration_seconds", 0.5, nil)
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush on nil client = %v, want nil", err)
	}
}
