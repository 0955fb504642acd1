package fonts

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"

	"github.com/ByLCY/caseframe/layout"
)

type recordingLoader struct {
	calls []layout.FontName
	fail  map[string]bool
}

func (l *recordingLoader) LoadFont(_ context.Context, name layout.FontName) error {
	l.calls = append(l.calls, name)
	if l.fail[name.Style] {
		return errors.New("font unavailable")
	}
	return nil
}

func TestEnsureRequestsAllWeightsInOrder(t *testing.T) {
	loader := &recordingLoader{}
	p := NewProvisioner(loader, "", log.New(io.Discard))
	if err := p.Ensure(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Regular", "Medium", "Semi Bold", "Bold"}
	if len(loader.calls) != len(want) {
		t.Fatalf("expected %d loads, got %d", len(want), len(loader.calls))
	}
	for i, name := range loader.calls {
		if name.Family != "Inter" || name.Style != want[i] {
			t.Errorf("load %d = %+v, want Inter %s", i, name, want[i])
		}
	}
}

func TestEnsureContinuesAfterFailure(t *testing.T) {
	loader := &recordingLoader{fail: map[string]bool{"Medium": true, "Bold": true}}
	var logs bytes.Buffer
	p := NewProvisioner(loader, "Inter", log.New(&logs))
	err := p.Ensure(context.Background())
	if err == nil {
		t.Fatalf("expected aggregated diagnostic error")
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Fatalf("expected 2 aggregated failures, got %d", got)
	}
	if len(loader.calls) != 4 {
		t.Fatalf("a failed font must not stop provisioning, got %d loads", len(loader.calls))
	}
	if !bytes.Contains(logs.Bytes(), []byte("Could not load font")) {
		t.Fatalf("failure must be logged, log: %s", logs.String())
	}
}

func TestFallback(t *testing.T) {
	for _, style := range []string{"Regular", "Medium", "Semi Bold", "SemiBold", "bold", "builtin:semibold", ""} {
		data, err := Fallback(style)
		if err != nil {
			t.Errorf("Fallback(%q): %v", style, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("Fallback(%q) returned empty data", style)
		}
	}
	if _, err := Fallback("Thin"); err == nil {
		t.Errorf("expected error for unknown weight")
	}
}
